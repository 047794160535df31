package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticPromotion(t *testing.T) {
	// Variant(1u) + Variant(2) -> Variant(3:Int).
	sum, err := Add(NewUInt(1), NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, Int, sum.Kind())
	n, _ := sum.AsInt64()
	assert.EqualValues(t, 3, n)

	// Variant(250:Byte) + Variant(10:Byte) -> Variant(260:UInt) (widen).
	sum2, err := Add(NewByte(250), NewByte(10))
	require.NoError(t, err)
	assert.Equal(t, UInt, sum2.Kind())
	n2, _ := sum2.AsInt64()
	assert.EqualValues(t, 260, n2)
}

func TestArithmeticRejectsBoolAndEmpty(t *testing.T) {
	_, err := Add(NewBool(true), NewInt(1))
	assert.Error(t, err)

	_, err = Add(NewEmpty(), NewInt(1))
	assert.Error(t, err)
}

func TestDivisionByZero(t *testing.T) {
	_, err := Div(NewInt(1), NewInt(0))
	assert.Error(t, err)
}

func TestMapIndexingScenario(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.SetItem(NewInt(1), NewString("a")))
	require.NoError(t, m.SetItem(NewString("x"), NewInt(7)))
	require.NoError(t, m.SetItem(NewInt(1), NewString("b")))

	count, err := m.GetCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	v1, err := m.GetItem(NewInt(1))
	require.NoError(t, err)
	s1, _ := v1.AsString()
	assert.Equal(t, "b", s1)

	vx, err := m.GetItem(NewString("x"))
	require.NoError(t, err)
	n, _ := vx.AsInt64()
	assert.EqualValues(t, 7, n)

	keys, err := m.Keys()
	require.NoError(t, err)
	require.Len(t, keys, 2)
	k0, _ := keys[0].AsInt64()
	k1, _ := keys[1].AsString()
	assert.EqualValues(t, 1, k0)
	assert.Equal(t, "x", k1)
}

func TestMapKeyUpdateInvariant(t *testing.T) {
	// m[k]=v1; m[k]=v2; assert m[k]==v2 and m.Count==1 after both
	// assigns.
	m := NewMap()
	require.NoError(t, m.SetItem(NewString("k"), NewInt(1)))
	require.NoError(t, m.SetItem(NewString("k"), NewInt(2)))
	count, _ := m.GetCount()
	assert.Equal(t, 1, count)
	v, err := m.GetItem(NewString("k"))
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.EqualValues(t, 2, n)
}

func TestMapAccessItemCreatesEntry(t *testing.T) {
	m := NewMap()
	_, err := m.GetItem(NewString("missing"))
	assert.Error(t, err)

	v, err := m.AccessItem(NewString("missing"))
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
	count, _ := m.GetCount()
	assert.Equal(t, 1, count)
}

func TestCOWSemantics(t *testing.T) {
	ac := NewVariantCollection([]Variant{NewInt(1), NewInt(2), NewInt(3)})
	bc := ac
	require.NoError(t, bc.SetItem(NewInt(0), NewInt(99)))

	av, _ := ac.GetItem(NewInt(0))
	bv, _ := bc.GetItem(NewInt(0))
	an, _ := av.AsInt64()
	bn, _ := bv.AsInt64()
	assert.EqualValues(t, 1, an, "mutating bc must not change ac")
	assert.EqualValues(t, 99, bn)
}

func TestSmallBufferBoundary(t *testing.T) {
	seven := NewString("1234567")
	assert.Equal(t, BufferCopy, seven.BufferKind())

	eight := NewString("12345678")
	assert.Equal(t, BufferRefcount, eight.BufferKind())
	s, _ := eight.AsString()
	assert.Equal(t, "12345678", s)
}

func TestAsBoolPerlStyle(t *testing.T) {
	cases := []struct {
		v    Variant
		want bool
	}{
		{NewString("FALSE"), false},
		{NewString("0"), false},
		{NewString(""), false},
		{NewString("false"), true}, // only all-caps FALSE is false
		{NewString("anything"), true},
		{NewInt(0), false},
		{NewInt(1), true},
	}
	for _, c := range cases {
		got, err := c.v.AsBool()
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	coll := NewVariantCollection([]Variant{NewInt(1), NewInt(2)})
	_, err := coll.GetItem(NewInt(5))
	assert.Error(t, err)

	// Negative index counts from the end.
	v, err := coll.GetItem(NewInt(-1))
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.EqualValues(t, 2, n)
}

func TestEqualityEmptyAndObject(t *testing.T) {
	eq, err := Equal(NewEmpty(), NewEmpty())
	require.NoError(t, err)
	assert.True(t, eq)

	// an Object Variant holding a nil pointer equals Empty
	eq, err = Equal(Variant{kind: Object}, NewEmpty())
	require.NoError(t, err)
	assert.True(t, eq)
}

type disposableThing struct {
	disposed *bool
}

func (d *disposableThing) ClassName() string { return "DisposableThing" }
func (d *disposableThing) EmbeddedSize() int { return 0 }
func (d *disposableThing) Dispose()          { *d.disposed = true }

func TestSetEmptyWithObjectDelete(t *testing.T) {
	disposed := false
	obj := &disposableThing{disposed: &disposed}

	v := NewObject(obj)
	v.SetEmptyWithObjectDelete()
	assert.True(t, v.IsEmpty())
	assert.True(t, disposed)

	// descends into collections
	disposed = false
	coll := NewVariantCollection([]Variant{NewInt(1), NewObject(obj)})
	coll.SetEmptyWithObjectDelete()
	assert.True(t, coll.IsEmpty())
	assert.True(t, disposed)
}

func TestSetEmptyReleasesPayload(t *testing.T) {
	v := NewString("a string long enough for the heap")
	v.SetEmpty()
	assert.True(t, v.IsEmpty())
	assert.Equal(t, BufferNone, v.BufferKind())
}
