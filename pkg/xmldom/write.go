package xmldom

import (
	"bytes"
	"encoding/xml"
)

// formatBytes renders the tree under the document's format mask.
func (d *Document) formatBytes() ([]byte, error) {
	var b bytes.Buffer
	if d.formatMask&FormatWriteBom != 0 {
		b.Write([]byte{0xEF, 0xBB, 0xBF})
	}
	indent := d.formatMask&FormatIndent != 0 && d.formatMask&FormatRaw == 0
	for c := d.firstChild; c != nil; c = c.NextSibling() {
		if c.kind == NodeDeclaration && d.formatMask&FormatNoDeclaration != 0 {
			continue
		}
		if err := writeNode(&b, c, d.indentationSequence, 0, indent); err != nil {
			return nil, err
		}
		if indent {
			b.WriteByte('\n')
		}
	}
	return b.Bytes(), nil
}

func writeIndent(b *bytes.Buffer, seq string, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(seq)
	}
}

func writeEscaped(b *bytes.Buffer, s string) {
	xml.EscapeText(b, []byte(s))
}

func writeAttrs(b *bytes.Buffer, attrs []Attribute) {
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		writeEscaped(b, a.Value)
		b.WriteByte('"')
	}
}

func writeNode(b *bytes.Buffer, n *Node, seq string, depth int, indent bool) error {
	if indent {
		writeIndent(b, seq, depth)
	}
	switch n.kind {
	case NodeElement:
		b.WriteByte('<')
		b.WriteString(n.name)
		writeAttrs(b, n.attrs)
		if n.firstChild == nil {
			b.WriteString("/>")
			return nil
		}
		b.WriteByte('>')
		// a lone PCDATA child stays on the element's own line
		if n.firstChild == n.lastChild && n.firstChild.kind == NodePCDATA {
			writeEscaped(b, n.firstChild.value)
		} else {
			for c := n.firstChild; c != nil; c = c.NextSibling() {
				if indent {
					b.WriteByte('\n')
				}
				if err := writeNode(b, c, seq, depth+1, indent); err != nil {
					return err
				}
			}
			if indent {
				b.WriteByte('\n')
				writeIndent(b, seq, depth)
			}
		}
		b.WriteString("</")
		b.WriteString(n.name)
		b.WriteByte('>')
	case NodePCDATA:
		writeEscaped(b, n.value)
	case NodeCDATA:
		b.WriteString("<![CDATA[")
		b.WriteString(n.value)
		b.WriteString("]]>")
	case NodeComment:
		b.WriteString("<!--")
		b.WriteString(n.value)
		b.WriteString("-->")
	case NodePI:
		b.WriteString("<?")
		b.WriteString(n.name)
		if n.value != "" {
			b.WriteByte(' ')
			b.WriteString(n.value)
		}
		b.WriteString("?>")
	case NodeDeclaration:
		b.WriteString("<?")
		b.WriteString(n.name)
		writeAttrs(b, n.attrs)
		b.WriteString("?>")
	case NodeDoctype:
		b.WriteString("<!DOCTYPE ")
		b.WriteString(n.value)
		b.WriteByte('>')
	}
	return nil
}
