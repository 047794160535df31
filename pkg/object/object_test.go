package object

import (
	"testing"

	"github.com/metercore/mcore/pkg/class"
	"github.com/metercore/mcore/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Base
	n int32
}

func newCounter() *counter {
	c := &counter{}
	c.Base = NewBase(counterClass, c)
	return c
}

var counterClass = func() *class.Descriptor {
	d := &class.Descriptor{Name: "Counter"}
	d.AddProperty(&class.Property{
		Name:       "Value",
		Persistent: true,
		Get: func(self variant.Object) (variant.Variant, error) {
			return variant.NewInt(self.(*counter).n), nil
		},
		Set: func(self variant.Object, v variant.Variant) error {
			n, err := v.AsInt()
			if err != nil {
				return err
			}
			self.(*counter).n = n
			return nil
		},
	})
	d.AddProperty(&class.Property{
		Name: "ReadOnlyTag",
		Get: func(variant.Object) (variant.Variant, error) {
			return variant.NewString("counter"), nil
		},
	})
	d.Service("Increment").AddOverload(0, func(self variant.Object, args []variant.Variant) (variant.Variant, error) {
		c := self.(*counter)
		c.n++
		return variant.NewInt(c.n), nil
	})
	return d
}()

func TestGetSetProperty(t *testing.T) {
	c := newCounter()
	require.NoError(t, c.SetProperty("Value", variant.NewInt(5)))
	v, err := c.GetProperty("value")
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.EqualValues(t, 5, n)
}

func TestSetReadOnlyPropertyFails(t *testing.T) {
	c := newCounter()
	err := c.SetProperty("ReadOnlyTag", variant.NewString("x"))
	assert.Error(t, err)
}

func TestCallVDispatch(t *testing.T) {
	c := newCounter()
	v, err := c.CallV("Increment")
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.EqualValues(t, 1, n)

	_, err = c.CallV("NoSuchThing")
	assert.Error(t, err)
}

func TestPersistentProperties(t *testing.T) {
	names := PersistentProperties(counterClass)
	assert.Contains(t, names, "Value")
	assert.NotContains(t, names, "ReadOnlyTag")
}

func TestCallSugarAccessors(t *testing.T) {
	c := newCounter()

	require.NoError(t, c.SetProperty("Value", variant.NewInt(9)))
	v, err := c.Call1("GetProperty", variant.NewString("Value"))
	require.NoError(t, err)
	n, _ := v.AsInt64()
	assert.EqualValues(t, 9, n)

	_, err = c.Call2("SetProperty", variant.NewString("Value"), variant.NewInt(12))
	require.NoError(t, err)
	v, err = c.GetProperty("Value")
	require.NoError(t, err)
	n, _ = v.AsInt64()
	assert.EqualValues(t, 12, n)

	present, err := c.Call1("IsPropertyPresent", variant.NewString("Value"))
	require.NoError(t, err)
	b, _ := present.AsBool()
	assert.True(t, b)

	present, err = c.Call1("IsServicePresent", variant.NewString("Increment"))
	require.NoError(t, err)
	b, _ = present.AsBool()
	assert.True(t, b)

	present, err = c.Call1("IsServicePresent", variant.NewString("Vanish"))
	require.NoError(t, err)
	b, _ = present.AsBool()
	assert.False(t, b)
}
