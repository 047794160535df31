package class

import (
	"testing"

	"github.com/metercore/mcore/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct{ value int }

func (f *fakeObject) ClassName() string { return "Fake" }
func (f *fakeObject) EmbeddedSize() int { return 0 }

func TestPropertyNameFolding(t *testing.T) {
	d := &Descriptor{Name: "Fake"}
	d.AddProperty(&Property{
		Name: "ByteOrder",
		Get: func(self variant.Object) (variant.Variant, error) {
			return variant.NewInt(int32(self.(*fakeObject).value)), nil
		},
	})

	for _, spelling := range []string{"ByteOrder", "byte_order", "byteorder", "BYTE_ORDER"} {
		p, ok := d.Property(spelling)
		require.True(t, ok, "spelling %q should resolve", spelling)
		v, err := p.Get(&fakeObject{value: 7})
		require.NoError(t, err)
		n, _ := v.AsInt64()
		assert.EqualValues(t, 7, n)
	}
}

func TestPropertyReadOnly(t *testing.T) {
	d := &Descriptor{Name: "Fake"}
	d.AddProperty(&Property{Name: "ReadOnly", Get: func(variant.Object) (variant.Variant, error) {
		return variant.NewEmpty(), nil
	}})
	p, ok := d.Property("ReadOnly")
	require.True(t, ok)
	assert.True(t, p.ReadOnly())
}

func TestInheritedLookup(t *testing.T) {
	base := &Descriptor{Name: "Base"}
	base.AddProperty(&Property{Name: "Inherited", Get: func(variant.Object) (variant.Variant, error) {
		return variant.NewBool(true), nil
	}})
	derived := &Descriptor{Name: "Derived", Parent: base}

	_, ok := derived.Property("Inherited")
	assert.True(t, ok)
	assert.True(t, derived.IsDerivedFrom(base))
	assert.False(t, base.IsDerivedFrom(derived))
}

func TestServiceArityDispatch(t *testing.T) {
	d := &Descriptor{Name: "Fake"}
	svc := d.Service("Add")
	svc.AddOverload(1, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		return args[0], nil
	})
	svc.AddOverload(2, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		n1, _ := args[0].AsInt64()
		n2, _ := args[1].AsInt64()
		return variant.NewInt64(n1 + n2), nil
	})

	found, ok := d.FindService("add")
	require.True(t, ok)

	v, err := found.Call(&fakeObject{}, []variant.Variant{variant.NewInt(3), variant.NewInt(4)})
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.EqualValues(t, 7, n)

	_, err = found.Call(&fakeObject{}, []variant.Variant{variant.NewInt(1), variant.NewInt(2), variant.NewInt(3)})
	assert.Error(t, err)
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	global = &registry{byName: make(map[string]*Descriptor)}
	d := &Descriptor{Name: "Widget"}
	require.NoError(t, Register(d))

	found, err := Lookup("widget")
	require.NoError(t, err)
	assert.Same(t, d, found)

	_, err = Lookup("missing")
	assert.Error(t, err)
}
