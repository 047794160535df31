package variant

import (
	"bytes"

	"github.com/metercore/mcore/pkg/errs"
)

// Comparer may be implemented by an Object to support reflected ordering
// comparisons.
type Comparer interface {
	CompareObject(other Object) (int, bool)
}

// Equal compares two Variants:
//   - within the promotion tower, convert and compare numerically;
//   - Empty == Empty;
//   - Object == Empty when the object pointer is nil;
//   - two Objects compare via a reflected Compare service if present;
//     equality without that service implies the objects are unequal
//     unless pointer-identical.
func Equal(a, b Variant) (bool, error) {
	if a.kind == Empty && b.kind == Empty {
		return true, nil
	}
	if a.kind == Empty || b.kind == Empty {
		other := a
		if a.kind == Empty {
			other = b
		}
		if other.kind == Object {
			obj, isNil := other.AsObject()
			return obj == nil || isNil, nil
		}
		return false, nil
	}
	if a.kind.IsPromotable() && b.kind.IsPromotable() {
		promoted, err := promoteOperands(a, b)
		if err != nil {
			// Bool compares only against Bool.
			if a.kind == Bool && b.kind == Bool {
				return a.scalar == b.scalar, nil
			}
			return false, nil
		}
		if promoted == Double {
			x, _ := a.asDouble()
			y, _ := b.asDouble()
			return x == y, nil
		}
		x, _ := a.asInt64()
		y, _ := b.asInt64()
		return x == y, nil
	}
	if a.kind == String || a.kind == ByteString {
		if b.kind != a.kind {
			return false, nil
		}
		return bytes.Equal(a.textBytes(), b.textBytes()), nil
	}
	if a.kind == Object || a.kind == ObjectEmbedded {
		if b.kind != Object && b.kind != ObjectEmbedded {
			return false, nil
		}
		oa, _ := a.AsObject()
		ob, _ := b.AsObject()
		if oa == ob {
			return true, nil
		}
		if cmp, ok := oa.(Comparer); ok {
			if n, supported := cmp.CompareObject(ob); supported {
				return n == 0, nil
			}
		}
		return false, nil
	}
	switch a.kind {
	case StringCollection, VariantCollection, Map:
		if b.kind != a.kind {
			return false, nil
		}
		ia, ib := a.items(), b.items()
		if len(ia) != len(ib) {
			return false, nil
		}
		for i := range ia {
			eq, err := Equal(ia[i], ib[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	}
	return false, errs.UnsupportedType("cannot compare %s and %s", a.kind, b.kind)
}

// Compare returns -1, 0, or 1 following the same promotion rules as
// Equal, for ordered (numeric and String/ByteString) kinds.
func Compare(a, b Variant) (int, error) {
	if a.kind.IsPromotable() && b.kind.IsPromotable() {
		promoted, err := promoteOperands(a, b)
		if err != nil {
			return 0, err
		}
		if promoted == Double {
			x, _ := a.asDouble()
			y, _ := b.asDouble()
			return cmpFloat(x, y), nil
		}
		x, _ := a.asInt64()
		y, _ := b.asInt64()
		return cmpInt(x, y), nil
	}
	if (a.kind == String || a.kind == ByteString) && a.kind == b.kind {
		return bytes.Compare(a.textBytes(), b.textBytes()), nil
	}
	return 0, errs.UnsupportedType("cannot order %s and %s", a.kind, b.kind)
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpInt(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
