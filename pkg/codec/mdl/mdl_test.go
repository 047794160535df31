package mdl

import (
	"testing"

	"github.com/metercore/mcore/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	v, err := Parse("TRUE")
	require.NoError(t, err)
	assert.Equal(t, variant.Bool, v.Kind())
	b, _ := v.AsBool()
	assert.True(t, b)

	v, err = Parse("FALSE")
	require.NoError(t, err)
	b, _ = v.AsBool()
	assert.False(t, b)

	v, err = Parse("EMPTY")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestParseNumbers(t *testing.T) {
	v, err := Parse("-1")
	require.NoError(t, err)
	assert.Equal(t, variant.Int, v.Kind())
	n, _ := v.AsInt64()
	assert.EqualValues(t, -1, n)

	v, err = Parse("7u")
	require.NoError(t, err)
	assert.Equal(t, variant.UInt, v.Kind())

	v, err = Parse("3.14")
	require.NoError(t, err)
	assert.Equal(t, variant.Double, v.Kind())
	d, _ := v.AsDouble()
	assert.InDelta(t, 3.14, d, 0.0001)

	v, err = Parse("2e3")
	require.NoError(t, err)
	assert.Equal(t, variant.Double, v.Kind())
}

func TestParseString(t *testing.T) {
	v, err := Parse(`"hello\nworld"`)
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "hello\nworld", s)

	v, err = Parse("`raw\\nstring`")
	require.NoError(t, err)
	s, _ = v.AsString()
	assert.Equal(t, `raw\nstring`, s)
}

func TestParseByteStringHex(t *testing.T) {
	// "x\"01 02 03\"" -> ByteString of length 3.
	v, err := Parse(`x"01 02 03"`)
	require.NoError(t, err)
	assert.Equal(t, variant.ByteString, v.Kind())
	bs, _ := v.AsByteString()
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, bs)
}

func TestParseByteStringDecimalDotted(t *testing.T) {
	v, err := Parse(`d"1.2.3"`)
	require.NoError(t, err)
	bs, _ := v.AsByteString()
	assert.Equal(t, []byte{1, 2, 3}, bs)
}

func TestParseMap(t *testing.T) {
	// "{1:\"a\",2:\"b\"}" -> Map with keys [1,2].
	v, err := Parse(`{1:"a",2:"b"}`)
	require.NoError(t, err)
	assert.Equal(t, variant.Map, v.Kind())
	keys, err := v.Keys()
	require.NoError(t, err)
	require.Len(t, keys, 2)
	k0, _ := keys[0].AsInt64()
	k1, _ := keys[1].AsInt64()
	assert.EqualValues(t, 1, k0)
	assert.EqualValues(t, 2, k1)
}

func TestParseDegenerateEmptyMap(t *testing.T) {
	v, err := Parse("{:}")
	require.NoError(t, err)
	assert.Equal(t, variant.Map, v.Kind())
	count, _ := v.GetCount()
	assert.Equal(t, 0, count)
}

func TestParseCollection(t *testing.T) {
	v, err := Parse("{1,2,3}")
	require.NoError(t, err)
	assert.Equal(t, variant.VariantCollection, v.Kind())
	count, _ := v.GetCount()
	assert.Equal(t, 3, count)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("{1:2")
	assert.Error(t, err)

	_, err = Parse("not-a-value !!!")
	assert.Error(t, err)
}

func TestParseRoundTripsWithToMDLConstant(t *testing.T) {
	m := variant.NewMap()
	require.NoError(t, m.SetItem(variant.NewInt(1), variant.NewString("a")))
	require.NoError(t, m.SetItem(variant.NewInt(2), variant.NewString("b")))

	text := m.ToMDLConstant(false)
	reparsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, variant.Map, reparsed.Kind())
	assert.Equal(t, text, reparsed.ToMDLConstant(false))
}
