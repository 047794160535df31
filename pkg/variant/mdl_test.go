package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMDLConstantScalars(t *testing.T) {
	assert.Equal(t, "EMPTY", NewEmpty().ToMDLConstant(false))
	assert.Equal(t, "TRUE", NewBool(true).ToMDLConstant(false))
	assert.Equal(t, "FALSE", NewBool(false).ToMDLConstant(false))
	assert.Equal(t, "-1", NewInt(-1).ToMDLConstant(false))
	assert.Equal(t, "7", NewUInt(7).ToMDLConstant(false))
	assert.Equal(t, "7u", NewUInt(7).ToMDLConstant(true))
}

func TestToMDLConstantString(t *testing.T) {
	assert.Equal(t, `"hi"`, NewString("hi").ToMDLConstant(false))
	assert.Equal(t, `"a\"b"`, NewString(`a"b`).ToMDLConstant(false))
}

func TestToMDLConstantByteString(t *testing.T) {
	bs := NewByteString(AcceptByteString, []byte{0x01, 0x02, 0x03})
	assert.Equal(t, `x"01 02 03"`, bs.ToMDLConstant(false))
}

func TestToMDLConstantMap(t *testing.T) {
	m := NewMap()
	assert.Equal(t, "{:}", m.ToMDLConstant(false))

	require := assert.New(t)
	err := m.SetItem(NewInt(1), NewString("a"))
	require.NoError(err)
	err = m.SetItem(NewInt(2), NewString("b"))
	require.NoError(err)
	assert.Equal(t, `{1:"a",2:"b"}`, m.ToMDLConstant(false))
}

func TestToMDLConstantCollection(t *testing.T) {
	c := NewVariantCollection([]Variant{NewInt(1), NewInt(2), NewInt(3)})
	assert.Equal(t, "{1,2,3}", c.ToMDLConstant(false))
}
