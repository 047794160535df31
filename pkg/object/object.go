// Package object implements the reflected object base: every Object
// carries a class descriptor and answers GetProperty, SetProperty, and
// Call through it. PersistentProperties lists the properties a class marks
// persistent; this package does not save or load them itself.
package object

import (
	"github.com/metercore/mcore/pkg/class"
	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/variant"
)

// Base is embedded by every reflected object to supply the generic
// GetProperty/SetProperty/Call machinery over its registered Descriptor.
// Concrete types embed Base and pass their own class.Descriptor and a
// "self" reference (itself) to NewBase so property getters/setters receive
// the concrete receiver rather than *Base.
type Base struct {
	descriptor *class.Descriptor
	self       variant.Object
}

// NewBase constructs the reflection base for a concrete object. self must
// be the embedding type's own value (typically the embedding constructor
// passes itself once fully built).
func NewBase(d *class.Descriptor, self variant.Object) Base {
	return Base{descriptor: d, self: self}
}

// ClassName implements variant.Object.
func (b *Base) ClassName() string {
	if b.descriptor == nil {
		return ""
	}
	return b.descriptor.Name
}

// EmbeddedSize implements variant.Object; reflected objects are always
// reference types here, never embedded-by-value.
func (b *Base) EmbeddedSize() int { return 0 }

// Descriptor returns the object's registered class descriptor.
func (b *Base) Descriptor() *class.Descriptor { return b.descriptor }

// GetProperty reads a property by name through the class descriptor chain.
func (b *Base) GetProperty(name string) (variant.Variant, error) {
	p, ok := b.descriptor.Property(name)
	if !ok {
		return variant.Variant{}, errs.NoSuchProperty("property %s not found on class %s", errs.Quote(name), b.descriptor.Name)
	}
	return p.Get(b.self)
}

// SetProperty writes a property by name, throwing if it is read-only or
// absent.
func (b *Base) SetProperty(name string, v variant.Variant) error {
	p, ok := b.descriptor.Property(name)
	if !ok {
		return errs.NoSuchProperty("property %s not found on class %s", errs.Quote(name), b.descriptor.Name)
	}
	if p.ReadOnly() {
		return errs.NoSuchProperty("property %s is read-only on class %s", errs.Quote(name), b.descriptor.Name)
	}
	return p.Set(b.self, v)
}

// Call invokes a service by name with the given arguments, dispatching to
// the overload matching their count. The property and presence accessors
// (GetProperty, SetProperty, IsPropertyPresent, IsServicePresent) resolve
// on every class without being listed in its service table.
func (b *Base) Call(name string, args ...variant.Variant) (variant.Variant, error) {
	switch name {
	case "GetProperty":
		if len(args) == 1 {
			propName, err := args[0].AsString()
			if err != nil {
				return variant.Variant{}, err
			}
			return b.GetProperty(propName)
		}
	case "SetProperty":
		if len(args) == 2 {
			propName, err := args[0].AsString()
			if err != nil {
				return variant.Variant{}, err
			}
			return variant.NewEmpty(), b.SetProperty(propName, args[1])
		}
	case "IsPropertyPresent":
		if len(args) == 1 {
			propName, err := args[0].AsString()
			if err != nil {
				return variant.Variant{}, err
			}
			_, present := b.descriptor.Property(propName)
			return variant.NewBool(present), nil
		}
	case "IsServicePresent":
		if len(args) == 1 {
			svcName, err := args[0].AsString()
			if err != nil {
				return variant.Variant{}, err
			}
			_, present := b.descriptor.FindService(svcName)
			return variant.NewBool(present), nil
		}
	}
	s, ok := b.descriptor.FindService(name)
	if !ok {
		return variant.Variant{}, errs.NoSuchService("service %s not found on class %s", errs.Quote(name), b.descriptor.Name)
	}
	return s.Call(b.self, args)
}

// CallV is Call sugar for a service taking no arguments.
func (b *Base) CallV(name string) (variant.Variant, error) { return b.Call(name) }

// Call1 is Call sugar for a service taking exactly one argument.
func (b *Base) Call1(name string, a variant.Variant) (variant.Variant, error) {
	return b.Call(name, a)
}

// Call2 is Call sugar for a service taking exactly two arguments.
func (b *Base) Call2(name string, a, c variant.Variant) (variant.Variant, error) {
	return b.Call(name, a, c)
}

// PersistentProperties returns the subset of the class's own properties
// marked persistent, sorted by name.
func PersistentProperties(d *class.Descriptor) []string {
	var out []string
	for _, name := range d.PropertyNames() {
		p, _ := d.Property(name)
		if p != nil && p.Persistent {
			out = append(out, p.Name)
		}
	}
	return out
}
