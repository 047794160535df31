// Package class implements the reflected class/property/service
// registry. Classes register themselves at init() time into a single
// process-wide, name-keyed table that property and service dispatch
// resolve against.
package class

import (
	"sort"
	"strings"
	"sync"

	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/variant"
)

// Property describes one reflected property of a class.
type Property struct {
	Name       string
	Persistent bool
	Get        func(self variant.Object) (variant.Variant, error)
	Set        func(self variant.Object, v variant.Variant) error
}

// ReadOnly reports whether the property lacks a setter.
func (p *Property) ReadOnly() bool { return p.Set == nil }

// Service describes one reflected method, dispatched by argument count.
type Service struct {
	Name      string
	overloads map[int]func(self variant.Object, args []variant.Variant) (variant.Variant, error)
}

func newService(name string) *Service {
	return &Service{Name: name, overloads: make(map[int]func(variant.Object, []variant.Variant) (variant.Variant, error))}
}

// AddOverload registers the implementation of this service for a specific
// argument count.
func (s *Service) AddOverload(arity int, fn func(self variant.Object, args []variant.Variant) (variant.Variant, error)) {
	s.overloads[arity] = fn
}

// Call invokes the overload matching len(args), or throws
// ServiceDoesNotHaveNParameters if none matches.
func (s *Service) Call(self variant.Object, args []variant.Variant) (variant.Variant, error) {
	fn, ok := s.overloads[len(args)]
	if !ok {
		return variant.Variant{}, errs.ServiceDoesNotHaveNParameters(
			"service %s has no overload accepting %d parameter(s)", s.Name, len(args))
	}
	return fn(self, args)
}

// Arities returns the registered overload argument counts, sorted.
func (s *Service) Arities() []int {
	out := make([]int, 0, len(s.overloads))
	for n := range s.overloads {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Descriptor is one registered class:
// a name, an optional parent for inheritance, and its own properties and
// services (inherited members are found by walking Parent).
type Descriptor struct {
	Name       string
	Parent     *Descriptor
	New        func() variant.Object
	properties map[string]*Property
	services   map[string]*Service
}

// AddProperty registers a property under this class.
func (d *Descriptor) AddProperty(p *Property) {
	if d.properties == nil {
		d.properties = make(map[string]*Property)
	}
	d.properties[foldName(p.Name)] = p
}

// Service returns the named service, creating it (with no overloads yet)
// if it does not already exist, so call sites can chain AddOverload.
func (d *Descriptor) Service(name string) *Service {
	if d.services == nil {
		d.services = make(map[string]*Service)
	}
	key := foldName(name)
	s, ok := d.services[key]
	if !ok {
		s = newService(name)
		d.services[key] = s
	}
	return s
}

// Property looks up a property by name, walking the inheritance chain and
// folding snake_case/camelCase spellings together.
func (d *Descriptor) Property(name string) (*Property, bool) {
	key := foldName(name)
	for c := d; c != nil; c = c.Parent {
		if p, ok := c.properties[key]; ok {
			return p, true
		}
	}
	return nil, false
}

// FindService looks up a service by name, walking the inheritance chain.
func (d *Descriptor) FindService(name string) (*Service, bool) {
	key := foldName(name)
	for c := d; c != nil; c = c.Parent {
		if s, ok := c.services[key]; ok {
			return s, true
		}
	}
	return nil, false
}

// IsDerivedFrom reports whether d is ancestor itself or inherits from it.
func (d *Descriptor) IsDerivedFrom(ancestor *Descriptor) bool {
	for c := d; c != nil; c = c.Parent {
		if c == ancestor {
			return true
		}
	}
	return false
}

// PropertyNames returns this class's own property names (not inherited),
// sorted for stable enumeration.
func (d *Descriptor) PropertyNames() []string {
	out := make([]string, 0, len(d.properties))
	for _, p := range d.properties {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}

// foldName normalizes a property/service name for lookup: lowercased with
// underscores stripped, so "ByteOrder", "byte_order", and "byteorder" all
// resolve to the same member.
func foldName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// registryCapacity bounds the process-wide class table; Register fails
// loudly once exceeded rather than overflowing silently.
const registryCapacity = 256

// registry is the process-wide class table, populated by Register calls
// made from each class package's init() function.
type registry struct {
	mu      sync.RWMutex
	byName  map[string]*Descriptor
	ordered []*Descriptor
}

var global = &registry{byName: make(map[string]*Descriptor)}

// Register adds a class descriptor to the process-wide registry. It is
// intended to be called from a package-level var or init() so that
// classes self-register on import.
func Register(d *Descriptor) error {
	global.mu.Lock()
	defer global.mu.Unlock()
	if len(global.ordered) >= registryCapacity {
		return errs.UnsupportedType("class registry is full (capacity %d)", registryCapacity)
	}
	global.byName[foldName(d.Name)] = d
	global.ordered = append(global.ordered, d)
	return nil
}

// Lookup finds a registered class by name, or throws ClassNotFound.
func Lookup(name string) (*Descriptor, error) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	d, ok := global.byName[foldName(name)]
	if !ok {
		return nil, errs.ClassNotFound("class %s is not registered", errs.Quote(name))
	}
	return d, nil
}

// All returns every registered class, in registration order.
func All() []*Descriptor {
	global.mu.RLock()
	defer global.mu.RUnlock()
	out := make([]*Descriptor, len(global.ordered))
	copy(out, global.ordered)
	return out
}
