package xmldom

import (
	"strings"

	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/stream"
	"github.com/metercore/mcore/pkg/variant"
)

// Parse mask bits, selecting which secondary node kinds the parser
// materializes and how PCDATA whitespace is handled. ReadBuffer honours
// ParsePI, ParseComments, ParseDeclaration, ParseDoctype, ParseWsPCDATA
// and ParseTrimPCDATA; the other bits are stored but do not change
// parsing (CDATA sections are read as PCDATA, and the tokenizer always
// resolves entities and normalizes line ends).
const (
	ParseMinimal        uint32 = 0x0000
	ParsePI             uint32 = 0x0001
	ParseComments       uint32 = 0x0002
	ParseCDATA          uint32 = 0x0004
	ParseWsPCDATA       uint32 = 0x0008
	ParseEscapes        uint32 = 0x0010
	ParseEol            uint32 = 0x0020
	ParseWconvAttribute uint32 = 0x0040
	ParseWnormAttribute uint32 = 0x0080
	ParseDeclaration    uint32 = 0x0100
	ParseDoctype        uint32 = 0x0200
	ParseTrimPCDATA     uint32 = 0x0800

	ParseMaskDefault = ParseCDATA | ParseEscapes | ParseWconvAttribute | ParseEol
	ParseMaskFull    = ParseMaskDefault | ParsePI | ParseComments | ParseDeclaration | ParseDoctype
)

// Format mask bits controlling document serialization.
const (
	FormatRawMinimal    uint32 = 0x0000
	FormatIndent        uint32 = 0x0001
	FormatWriteBom      uint32 = 0x0002
	FormatRaw           uint32 = 0x0004
	FormatNoDeclaration uint32 = 0x0008

	FormatMaskDefault = FormatIndent
)

// Document is the root of an XML tree. It is itself a Node (of kind
// NodeDocument) so tree operations compose uniformly.
type Document struct {
	Node

	parseMask           uint32
	formatMask          uint32
	indentationSequence string
	pathDelimiter       byte
}

// New creates an empty document with default parse and format masks.
func New() *Document {
	d := &Document{
		parseMask:           ParseMaskFull,
		formatMask:          FormatMaskDefault,
		indentationSequence: "   ",
		pathDelimiter:       '/',
	}
	d.Node.kind = NodeDocument
	d.Node.doc = d
	d.Node.Base = newDocumentBase(d)
	return d
}

// ParseMask returns the active parse mask.
func (d *Document) ParseMask() uint32 { return d.parseMask }

// SetParseMask replaces the parse mask used by subsequent Read calls.
func (d *Document) SetParseMask(mask uint32) { d.parseMask = mask }

// FormatMask returns the active format mask.
func (d *Document) FormatMask() uint32 { return d.formatMask }

// SetFormatMask replaces the format mask used by subsequent writes.
func (d *Document) SetFormatMask(mask uint32) { d.formatMask = mask }

// IndentationSequence returns the per-level indent text.
func (d *Document) IndentationSequence() string { return d.indentationSequence }

// SetIndentationSequence replaces the per-level indent text.
func (d *Document) SetIndentationSequence(s string) { d.indentationSequence = s }

// PathDelimiter returns the character joining path segments.
func (d *Document) PathDelimiter() byte { return d.pathDelimiter }

// SetPathDelimiter replaces the path segment delimiter.
func (d *Document) SetPathDelimiter(c byte) { d.pathDelimiter = c }

// DocumentElement returns the document's element root, nil on an empty
// document.
func (d *Document) DocumentElement() *Node {
	for c := d.firstChild; c != nil; c = c.NextSibling() {
		if c.kind == NodeElement {
			return c
		}
	}
	return nil
}

// Clear empties the document.
func (d *Document) Clear() {
	d.RemoveAllChildren()
	d.RemoveAllAttributes()
}

// Assign replaces this document's contents with a reparse of other.
func (d *Document) Assign(other *Document) error {
	text, err := other.AsString()
	if err != nil {
		return err
	}
	return d.ReadString(text)
}

// streamReader is the stream surface Read needs; satisfied by every
// concrete stream.
type streamReader interface {
	ReadAll() ([]byte, error)
}

// streamWriter is the stream surface Write needs.
type streamWriter interface {
	Write([]byte) error
}

// Read loads the document from v, dispatching on its type: a stream
// object is drained, another document is assigned, and a string is
// treated as in-place XML when it looks like markup (starts with '<' and
// ends with '>' after trimming), otherwise as a filename.
func (d *Document) Read(v variant.Variant) error {
	if v.Kind() == variant.Object || v.Kind() == variant.ObjectEmbedded {
		obj, isNil := v.AsObject()
		if isNil {
			return errs.NoValue("cannot read XML from a null object")
		}
		switch o := obj.(type) {
		case streamReader:
			data, err := o.ReadAll()
			if err != nil {
				return err
			}
			return d.ReadBuffer(data)
		case *Document:
			return d.Assign(o)
		default:
			return errs.UnsupportedType("cannot read XML from an object of class %s", errs.Quote(obj.ClassName()))
		}
	}
	str, err := v.AsString()
	if err != nil {
		return err
	}
	if looksLikeMarkup(str) {
		return d.ReadString(str)
	}
	return d.ReadFile(str)
}

// looksLikeMarkup applies the in-place XML heuristic: after trimming a
// BOM and whitespace the text starts with '<' and ends with '>'.
func looksLikeMarkup(s string) bool {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimSpace(s)
	return len(s) >= 3 && s[0] == '<' && s[len(s)-1] == '>'
}

// ReadString parses in-place XML text.
func (d *Document) ReadString(text string) error {
	return d.ReadBuffer([]byte(text))
}

// ReadFile parses the file at path.
func (d *Document) ReadFile(path string) error {
	f, err := stream.OpenFile(path, stream.FlagReadOnly)
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := f.ReadAll()
	if err != nil {
		return err
	}
	return d.ReadBuffer(data)
}

// Write stores the document to v: a stream object receives the formatted
// bytes, a string names a file to create.
func (d *Document) Write(v variant.Variant) error {
	data, err := d.formatBytes()
	if err != nil {
		return err
	}
	if v.Kind() == variant.Object || v.Kind() == variant.ObjectEmbedded {
		obj, isNil := v.AsObject()
		if isNil {
			return errs.NoValue("cannot write XML to a null object")
		}
		w, ok := obj.(streamWriter)
		if !ok {
			return errs.UnsupportedType("cannot write XML to an object of class %s", errs.Quote(obj.ClassName()))
		}
		return w.Write(data)
	}
	path, err := v.AsString()
	if err != nil {
		return err
	}
	f, err := stream.OpenFile(path, stream.FlagWriteOnly)
	if err != nil {
		return err
	}
	if err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AsString renders the document under the active format mask.
func (d *Document) AsString() (string, error) {
	data, err := d.formatBytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
