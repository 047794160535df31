package variant

import "github.com/metercore/mcore/pkg/errs"

// AdjustIndex resolves an index against a count: negative indices count
// from the end, and the valid range is [-count, count-1].
func AdjustIndex(index, count int) (int, error) {
	i := index
	if i < 0 {
		i += count
	}
	if i < 0 || i >= count {
		return 0, errs.IndexOutOfRange("index %d out of range for count %d", index, count)
	}
	return i, nil
}

// AdjustSlice clamps a from-inclusive, to-exclusive slice range,
// yielding an empty slice when the range is reversed.
func AdjustSlice(from, to, count int) (int, int) {
	f := from
	if f < 0 {
		f += count
	}
	if f < 0 {
		f = 0
	}
	if f > count {
		f = count
	}
	t := to
	if t < 0 {
		t += count
	}
	if t < 0 {
		t = 0
	}
	if t > count {
		t = count
	}
	if t < f {
		t = f
	}
	return f, t
}

// GetItem indexes into a String, ByteString, StringCollection,
// VariantCollection, or Map Variant. For Map, index selects by key
// rather than by position.
func (v Variant) GetItem(index Variant) (Variant, error) {
	switch v.kind {
	case String:
		i, err := indexArg(index)
		if err != nil {
			return Variant{}, err
		}
		b := v.textBytes()
		pos, ierr := AdjustIndex(i, len(b))
		if ierr != nil {
			return Variant{}, ierr
		}
		return NewString(string(b[pos])), nil
	case ByteString:
		i, err := indexArg(index)
		if err != nil {
			return Variant{}, err
		}
		b := v.textBytes()
		pos, ierr := AdjustIndex(i, len(b))
		if ierr != nil {
			return Variant{}, ierr
		}
		return NewByte(b[pos]), nil
	case StringCollection, VariantCollection:
		i, err := indexArg(index)
		if err != nil {
			return Variant{}, err
		}
		items := v.items()
		pos, ierr := AdjustIndex(i, len(items))
		if ierr != nil {
			return Variant{}, ierr
		}
		return items[pos], nil
	case Map:
		return mapGetItem(v, index)
	default:
		return Variant{}, errs.CannotIndexItem("kind %s is not indexed", v.kind)
	}
}

// SetItem assigns into a collection or Map Variant, cloning the backing
// buffer before mutating it (see shared.go). String and ByteString
// Variants refuse item assignment with CannotIndexItem.
func (v *Variant) SetItem(index Variant, value Variant) error {
	switch v.kind {
	case StringCollection, VariantCollection:
		i, err := indexArg(index)
		if err != nil {
			return err
		}
		items := v.items()
		pos, ierr := AdjustIndex(i, len(items))
		if ierr != nil {
			return ierr
		}
		fresh := v.shared.cloneItems()
		fresh.items[pos] = value
		v.shared = fresh
		return nil
	case Map:
		return mapSetItem(v, index, value)
	default:
		return errs.CannotIndexItem("kind %s does not support item assignment", v.kind)
	}
}

func indexArg(index Variant) (int, error) {
	n, err := index.AsInt64()
	if err != nil {
		return 0, errs.BadConversion("index must be numeric: %v", err)
	}
	return int(n), nil
}

// GetSlice returns the Pythonic slice [from:to) of a String, ByteString,
// or VariantCollection Variant.
func (v Variant) GetSlice(from, to int) (Variant, error) {
	switch v.kind {
	case String, ByteString:
		b := v.textBytes()
		f, t := AdjustSlice(from, to, len(b))
		return newTextVariant(v.kind, b[f:t]), nil
	case StringCollection, VariantCollection:
		items := v.items()
		f, t := AdjustSlice(from, to, len(items))
		cp := make([]Variant, t-f)
		copy(cp, items[f:t])
		if v.kind == StringCollection {
			return Variant{kind: StringCollection, buf: BufferRefcount, count: uint32(len(cp)), shared: newItemsBuffer(cp)}, nil
		}
		return NewVariantCollection(cp), nil
	default:
		return Variant{}, errs.CannotIndexItem("kind %s does not support slicing", v.kind)
	}
}
