package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/variant"
)

func TestRawCodecRoundTrip(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)

	require.NoError(t, m.WriteRawVariant(variant.NewInt(-1)))
	require.NoError(t, m.WriteRawVariant(variant.NewString("hi")))
	require.NoError(t, m.SetPosition(0))

	first, err := m.ReadRawVariant()
	require.NoError(t, err)
	assert.Equal(t, variant.Int, first.Kind())
	n, _ := first.AsInt()
	assert.EqualValues(t, -1, n)

	second, err := m.ReadRawVariant()
	require.NoError(t, err)
	assert.Equal(t, variant.String, second.Kind())
	s, _ := second.AsString()
	assert.Equal(t, "hi", s)
}

func TestRawCodecAllKinds(t *testing.T) {
	values := []variant.Variant{
		variant.NewEmpty(),
		variant.NewBool(true),
		variant.NewByte(0xA5),
		variant.NewChar('Q'),
		variant.NewUInt(4000000000),
		variant.NewInt(-123456),
		variant.NewDouble(3.25),
		variant.NewByteString(variant.AcceptByteString, []byte{1, 2, 3}),
		variant.NewString("a longer string payload"),
		variant.NewStringCollection([]string{"one", "two"}),
		variant.NewVariantCollection([]variant.Variant{
			variant.NewInt(7),
			variant.NewString("nested"),
		}),
	}

	m, err := NewMemory()
	require.NoError(t, err)
	for _, v := range values {
		require.NoError(t, m.WriteRawVariant(v))
	}
	require.NoError(t, m.SetPosition(0))

	for _, want := range values {
		got, err := m.ReadRawVariant()
		require.NoError(t, err)
		assert.Equal(t, want.Kind(), got.Kind())
		eq, err := variant.Equal(want, got)
		require.NoError(t, err)
		assert.True(t, eq, "kind %s did not round-trip", want.Kind())
	}
}

func TestRawCodecRefusesMap(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)

	mv := variant.NewMap()
	require.NoError(t, mv.SetItem(variant.NewInt(1), variant.NewString("a")))
	err = m.WriteRawVariant(mv)
	assert.Equal(t, errs.CodeUnsupportedType, errCode(t, err))
}

func TestRawCodecClampsCollectionCount(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)
	require.NoError(t, m.WriteRawInt(int32(variant.VariantCollection)))
	require.NoError(t, m.WriteRawInt(0x7FFFFFFF))
	require.NoError(t, m.SetPosition(0))

	_, err = m.ReadRawVariant()
	assert.Equal(t, errs.CodeNumberOutOfRange, errCode(t, err))
}

func TestRawCodecUnknownTag(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)
	require.NoError(t, m.WriteRawInt(99))
	require.NoError(t, m.SetPosition(0))

	_, err = m.ReadRawVariant()
	assert.Equal(t, errs.CodeUnsupportedType, errCode(t, err))
}
