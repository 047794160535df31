package xmldom

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metercore/mcore/pkg/stream"
	"github.com/metercore/mcore/pkg/variant"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<!-- meter configuration -->
<tables>
  <table name="ST1" id="1">
    <field>MANUFACTURER</field>
    <field>ED_MODEL</field>
  </table>
  <table name="MT17" id="17"/>
</tables>
`

func parseSample(t *testing.T) *Document {
	t.Helper()
	d := New()
	require.NoError(t, d.ReadString(sampleXML))
	return d
}

func TestParseStructure(t *testing.T) {
	d := parseSample(t)

	root := d.DocumentElement()
	require.NotNil(t, root)
	assert.Equal(t, "tables", root.Name())
	assert.Equal(t, NodeElement, root.NodeType())

	// declaration and comment survive under the full parse mask
	first := d.FirstChild()
	require.NotNil(t, first)
	assert.Equal(t, NodeDeclaration, first.NodeType())
	version, ok := first.Attribute("version")
	require.True(t, ok)
	assert.Equal(t, "1.0", version)

	comment := first.NextSibling()
	require.NotNil(t, comment)
	assert.Equal(t, NodeComment, comment.NodeType())
	assert.Equal(t, " meter configuration ", comment.Value())

	tables := root.Children()
	require.Len(t, tables, 2)
	assert.Equal(t, "ST1", mustAttr(t, tables[0], "name"))
	assert.Equal(t, "MT17", mustAttr(t, tables[1], "name"))
}

func mustAttr(t *testing.T, n *Node, name string) string {
	t.Helper()
	v, err := n.ExistingAttribute(name)
	require.NoError(t, err)
	return v
}

func TestParseMaskFiltersComments(t *testing.T) {
	d := New()
	d.SetParseMask(ParseMaskDefault) // no comments, no declaration
	require.NoError(t, d.ReadString(sampleXML))
	first := d.FirstChild()
	require.NotNil(t, first)
	assert.Equal(t, NodeElement, first.NodeType())
}

func TestTextAccessor(t *testing.T) {
	d := parseSample(t)
	field := d.DocumentElement().Child("table").Child("field")
	require.NotNil(t, field)
	assert.Equal(t, "MANUFACTURER", field.Text())

	// assigning creates the PCDATA child when absent
	empty := d.DocumentElement().Children()[1]
	assert.Equal(t, "", empty.Text())
	require.NoError(t, empty.SetText("POWER"))
	assert.Equal(t, "POWER", empty.Text())

	require.NoError(t, field.SetText("VENDOR"))
	assert.Equal(t, "VENDOR", field.Text())
}

func TestSiblingNavigation(t *testing.T) {
	d := parseSample(t)
	table := d.DocumentElement().Child("table")
	fields := table.Children()
	require.Len(t, fields, 2)

	assert.Nil(t, table.FirstChild().PreviousSibling())
	assert.Nil(t, table.LastChild().NextSibling())
	assert.Same(t, fields[1], fields[0].NextSibling())
	assert.Same(t, fields[0], fields[1].PreviousSibling())
}

func TestPathAndLookup(t *testing.T) {
	d := parseSample(t)
	field := d.DocumentElement().Child("table").Child("field")
	assert.Equal(t, "/tables/table/field", field.Path())

	found := d.Node.FirstElementByPath("/tables/table/field")
	require.NotNil(t, found)
	assert.Same(t, field, found)

	d.SetPathDelimiter('.')
	assert.Equal(t, ".tables.table.field", field.Path())
	assert.Nil(t, d.Node.FirstElementByPath(".tables.missing"))
}

func TestMutatorErrors(t *testing.T) {
	d := parseSample(t)
	field := d.DocumentElement().Child("table").Child("field")
	pcdata := field.FirstChild()
	require.Equal(t, NodePCDATA, pcdata.NodeType())

	_, err := pcdata.AppendChild(NodeElement)
	assert.Error(t, err)
	assert.Error(t, pcdata.SetName("renamed"))

	comment, err := d.DocumentElement().AppendChild(NodeComment)
	require.NoError(t, err)
	assert.Error(t, comment.SetName("x"))
	require.NoError(t, comment.SetValue("note"))
}

func TestAttributeOrderAndUpdate(t *testing.T) {
	d := parseSample(t)
	table := d.DocumentElement().Child("table")
	assert.Equal(t, []string{"name", "id"}, table.AttributeNames())

	added := table.SetAttribute("name", "ST2")
	assert.False(t, added) // replaced in place
	added = table.SetAttribute("rev", "3")
	assert.True(t, added)
	assert.Equal(t, []string{"name", "id", "rev"}, table.AttributeNames())

	assert.True(t, table.RemoveAttribute("id"))
	assert.False(t, table.RemoveAttribute("id"))
}

func TestWriteRoundTrip(t *testing.T) {
	d := parseSample(t)
	text, err := d.AsString()
	require.NoError(t, err)

	back := New()
	require.NoError(t, back.ReadString(text))
	root := back.DocumentElement()
	require.NotNil(t, root)
	assert.Equal(t, "tables", root.Name())
	assert.Equal(t, "MANUFACTURER", root.Child("table").Child("field").Text())
}

func TestWriteRawAndCdata(t *testing.T) {
	d := New()
	root, err := d.AppendChildElement("payload")
	require.NoError(t, err)
	cdata, err := root.AppendChild(NodeCDATA)
	require.NoError(t, err)
	require.NoError(t, cdata.SetValue("a < b && c"))

	d.SetFormatMask(FormatRaw)
	text, err := d.AsString()
	require.NoError(t, err)
	assert.Equal(t, "<payload><![CDATA[a < b && c]]></payload>", text)
}

func TestReadDispatch(t *testing.T) {
	// inline markup
	d := New()
	require.NoError(t, d.Read(variant.NewString("  <root><a>1</a></root>  ")))
	assert.Equal(t, "1", d.DocumentElement().Child("a").Text())

	// filename
	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, d.Write(variant.NewString(path)))
	back := New()
	require.NoError(t, back.Read(variant.NewString(path)))
	assert.Equal(t, "1", back.DocumentElement().Child("a").Text())

	// stream object
	m, err := stream.NewMemoryBytes([]byte("<root><a>2</a></root>"), stream.FlagReadWrite)
	require.NoError(t, err)
	viaStream := New()
	require.NoError(t, viaStream.Read(variant.NewObject(m)))
	assert.Equal(t, "2", viaStream.DocumentElement().Child("a").Text())
}

func TestReadUTF16(t *testing.T) {
	// "<r>ok</r>" encoded UTF-16LE with BOM
	text := "<r>ok</r>"
	data := []byte{0xFF, 0xFE}
	for i := 0; i < len(text); i++ {
		data = append(data, text[i], 0)
	}
	d := New()
	require.NoError(t, d.ReadBuffer(data))
	assert.Equal(t, "ok", d.DocumentElement().Text())
}

func TestMalformedInput(t *testing.T) {
	d := New()
	assert.Error(t, d.ReadString("<open><unclosed></open>"))
}

func TestReflectedNodeAccess(t *testing.T) {
	d := parseSample(t)

	text, err := d.GetProperty("AsString")
	require.NoError(t, err)
	s, _ := text.AsString()
	assert.Contains(t, s, "<tables>")

	mask, err := d.GetProperty("ParseMaskDefault")
	require.NoError(t, err)
	n, _ := mask.AsUInt()
	assert.Equal(t, ParseMaskDefault, n)

	root := d.DocumentElement()
	name, err := root.GetProperty("Name")
	require.NoError(t, err)
	s, _ = name.AsString()
	assert.Equal(t, "tables", s)

	present, err := root.Call("IsChildPresent", variant.NewString("table"))
	require.NoError(t, err)
	b, _ := present.AsBool()
	assert.True(t, b)
}
