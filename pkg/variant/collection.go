package variant

import "github.com/metercore/mcore/pkg/errs"

// collectionExtend is the += operator on a collection. When b is itself
// a collection, each of its elements is appended individually rather than
// nesting b as one item; a scalar b is appended as a single new element.
func collectionExtend(a, b Variant) (Variant, error) {
	items := append([]Variant{}, a.items()...)
	switch b.kind {
	case VariantCollection, StringCollection:
		items = append(items, b.items()...)
	default:
		items = append(items, b)
	}
	if a.kind == StringCollection {
		return Variant{kind: StringCollection, buf: BufferRefcount, count: uint32(len(items)), shared: newItemsBuffer(items)}, nil
	}
	return NewVariantCollection(items), nil
}

// collectionRemove is the -= operator: it removes matching elements,
// all occurrences on arrays and one entry on Maps.
func collectionRemove(a, b Variant) (Variant, error) {
	if a.kind == Map {
		items := append([]Variant{}, a.items()...)
		for i := 0; i < len(items); i += 2 {
			eq, err := Equal(items[i], b)
			if err != nil {
				return Variant{}, err
			}
			if eq {
				items = append(items[:i], items[i+2:]...)
				break
			}
		}
		return Variant{kind: Map, buf: BufferRefcount, count: uint32(len(items)), shared: newItemsBuffer(items)}, nil
	}

	targets := []Variant{b}
	if b.kind == VariantCollection || b.kind == StringCollection {
		targets = b.items()
	}
	items := a.items()
	out := make([]Variant, 0, len(items))
	for _, it := range items {
		remove := false
		for _, t := range targets {
			if eq, _ := Equal(it, t); eq {
				remove = true
				break
			}
		}
		if !remove {
			out = append(out, it)
		}
	}
	if a.kind == StringCollection {
		return Variant{kind: StringCollection, buf: BufferRefcount, count: uint32(len(out)), shared: newItemsBuffer(out)}, nil
	}
	if a.kind != VariantCollection {
		return Variant{}, errs.UnsupportedType("-= is not supported on kind %s", a.kind)
	}
	return NewVariantCollection(out), nil
}
