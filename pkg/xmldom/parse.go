package xmldom

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/metercore/mcore/pkg/errs"
)

// ReadBuffer parses raw document bytes, transcoding UTF-16 input (either
// byte order, detected by BOM) to UTF-8 first.
func (d *Document) ReadBuffer(data []byte) error {
	data, err := normalizeEncoding(data)
	if err != nil {
		return err
	}
	d.Clear()

	dec := xml.NewDecoder(bytes.NewReader(data))
	// the document model stores entities resolved; unknown charset
	// labels in the declaration are passed through as-is
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	cur := &d.Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errs.BadConversion("cannot parse XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := cur.AppendChild(NodeElement)
			if err != nil {
				return err
			}
			child.name = t.Name.Local
			for _, a := range t.Attr {
				name := a.Name.Local
				if a.Name.Space == "xmlns" {
					name = "xmlns:" + a.Name.Local
				}
				child.attrs = append(child.attrs, Attribute{Name: name, Value: a.Value})
			}
			cur = child
		case xml.EndElement:
			cur = cur.parent
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" && d.parseMask&ParseWsPCDATA == 0 {
				continue
			}
			if cur == &d.Node {
				continue // loose whitespace outside the root element
			}
			if d.parseMask&ParseTrimPCDATA != 0 {
				text = strings.TrimSpace(text)
			}
			child, err := cur.AppendChild(NodePCDATA)
			if err != nil {
				return err
			}
			child.value = text
		case xml.Comment:
			if d.parseMask&ParseComments == 0 {
				continue
			}
			child, err := cur.AppendChild(NodeComment)
			if err != nil {
				return err
			}
			child.value = string(t)
		case xml.ProcInst:
			if t.Target == "xml" {
				if d.parseMask&ParseDeclaration == 0 {
					continue
				}
				child, err := cur.AppendChild(NodeDeclaration)
				if err != nil {
					return err
				}
				child.name = t.Target
				child.attrs = parseDeclarationAttrs(string(t.Inst))
				continue
			}
			if d.parseMask&ParsePI == 0 {
				continue
			}
			child, err := cur.AppendChild(NodePI)
			if err != nil {
				return err
			}
			child.name = t.Target
			child.value = string(t.Inst)
		case xml.Directive:
			if d.parseMask&ParseDoctype == 0 {
				continue
			}
			child, err := cur.AppendChild(NodeDoctype)
			if err != nil {
				return err
			}
			child.value = string(t)
		}
	}
	if cur != &d.Node {
		return errs.BadConversion("cannot parse XML: unbalanced element %s", errs.Quote(cur.name))
	}
	return nil
}

// normalizeEncoding strips a UTF-8 BOM and transcodes UTF-16 input to
// UTF-8 when a UTF-16 BOM is present.
func normalizeEncoding(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return data[3:], nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return nil, errs.BadConversion("cannot transcode UTF-16 XML: %v", err)
		}
		return out, nil
	default:
		return data, nil
	}
}

// parseDeclarationAttrs splits the body of an <?xml ...?> declaration
// into its pseudo-attributes.
func parseDeclarationAttrs(inst string) []Attribute {
	var out []Attribute
	for _, field := range strings.Fields(inst) {
		eq := strings.IndexByte(field, '=')
		if eq < 0 {
			continue
		}
		value := strings.Trim(field[eq+1:], `"'`)
		out = append(out, Attribute{Name: field[:eq], Value: value})
	}
	return out
}
