package variant

import "github.com/metercore/mcore/pkg/errs"

// mapGetItem implements "GetItem(k)" for a Map: throws "entry not found"
// for a missing key.
func mapGetItem(m Variant, key Variant) (Variant, error) {
	items := m.items()
	for i := len(items) - 2; i >= 0; i -= 2 {
		eq, err := Equal(items[i], key)
		if err != nil {
			return Variant{}, err
		}
		if eq {
			return items[i+1], nil
		}
	}
	return Variant{}, errs.UnknownItem("entry not found for key %s", errs.Quote(key))
}

// mapSetItem implements "SetItem(k, v)" for a Map: walking from the tail,
// newest wins on duplicates; it either replaces the matching key's value
// in place or appends a new pair.
func mapSetItem(m *Variant, key Variant, value Variant) error {
	items := m.items()
	for i := len(items) - 2; i >= 0; i -= 2 {
		eq, err := Equal(items[i], key)
		if err != nil {
			return err
		}
		if eq {
			fresh := m.shared.cloneItems()
			fresh.items[i+1] = value
			m.shared = fresh
			return nil
		}
	}
	fresh := m.shared.cloneItems()
	fresh.items = append(fresh.items, key, value)
	fresh.refs = 1
	m.shared = fresh
	m.count = uint32(len(fresh.items))
	return nil
}

// AccessItem reads a Map entry by key: for a missing key this *creates*
// a pair with an Empty value and returns the mutable reference
// to it (here: the created Empty Variant, with the mutation already
// applied to m). This is the documented difference from GetItem, which
// throws for a missing key.
func (m *Variant) AccessItem(key Variant) (Variant, error) {
	if m.kind != Map {
		return Variant{}, errs.CannotIndexItem("AccessItem requires a Map, got %s", m.kind)
	}
	items := m.items()
	for i := len(items) - 2; i >= 0; i -= 2 {
		eq, err := Equal(items[i], key)
		if err != nil {
			return Variant{}, err
		}
		if eq {
			return items[i+1], nil
		}
	}
	empty := NewEmpty()
	if err := mapSetItem(m, key, empty); err != nil {
		return Variant{}, err
	}
	return empty, nil
}

// Keys returns the Map's keys in insertion order: first-seen order, not
// last-write order, so reassigning through an existing key does not move
// it.
func (m Variant) Keys() ([]Variant, error) {
	if m.kind != Map {
		return nil, errs.CannotIndexItem("Keys requires a Map, got %s", m.kind)
	}
	items := m.items()
	keys := make([]Variant, 0, len(items)/2)
	seen := make([]Variant, 0, len(items)/2)
outer:
	for i := 0; i < len(items); i += 2 {
		for _, s := range seen {
			if eq, _ := Equal(items[i], s); eq {
				continue outer
			}
		}
		seen = append(seen, items[i])
		keys = append(keys, items[i])
	}
	return keys, nil
}

// mapAdd merges two Maps right-to-left, or installs a single key/value
// pair when the right operand is a 2-element collection.
func mapAdd(a, b Variant) (Variant, error) {
	result := a
	switch b.kind {
	case Map:
		bItems := b.items()
		for i := 0; i < len(bItems); i += 2 {
			if err := mapSetItem(&result, bItems[i], bItems[i+1]); err != nil {
				return Variant{}, err
			}
		}
		return result, nil
	case VariantCollection, StringCollection:
		items := b.items()
		if len(items) != 2 {
			return Variant{}, errs.BadConversion("+= on a Map requires a 2-element collection, got %d elements", len(items))
		}
		if err := mapSetItem(&result, items[0], items[1]); err != nil {
			return Variant{}, err
		}
		return result, nil
	default:
		return Variant{}, errs.UnsupportedType("cannot add %s to a Map", b.kind)
	}
}
