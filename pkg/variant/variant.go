package variant

import (
	"math"

	"github.com/metercore/mcore/pkg/errs"
)

// Variant is the dynamically typed value. It is a plain Go value type:
// assigning one Variant to another (`b := a`) is an O(1) struct copy that
// shares any heap buffer, and mutating b never affects a because every
// mutating method clones its heap buffer before writing to it rather than
// relying on (and so never needing) an authoritative shared refcount.
type Variant struct {
	kind   Kind
	buf    BufferKind
	count  uint32 // element/byte count for buffer kinds; 2x entry count for Map
	scalar uint64 // Bool/Byte/Char/UInt/Int/Double payload (Double via math.Float64bits)
	small  [inlineCapacity]byte
	shared *sharedBuffer
}

// NullObject is the singleton Empty Variant standing in for a null
// object reference.
var NullObject = Variant{kind: Empty}

// NewEmpty returns an Empty Variant.
func NewEmpty() Variant { return Variant{kind: Empty} }

// NewBool constructs a Bool Variant.
func NewBool(v bool) Variant {
	var s uint64
	if v {
		s = 1
	}
	return Variant{kind: Bool, scalar: s}
}

// NewByte constructs a Byte Variant.
func NewByte(v byte) Variant { return Variant{kind: Byte, scalar: uint64(v)} }

// NewChar constructs a Char Variant holding one byte-sized character.
func NewChar(v byte) Variant { return Variant{kind: Char, scalar: uint64(v)} }

// NewUInt constructs a UInt Variant.
func NewUInt(v uint32) Variant { return Variant{kind: UInt, scalar: uint64(v)} }

// NewInt constructs an Int Variant.
func NewInt(v int32) Variant { return Variant{kind: Int, scalar: uint64(uint32(v))} }

// NewInt64 constructs an Int Variant from a wider Go integer. Int is a
// 32-bit kind: AsInt64, arithmetic and ToMDLConstant read back only the
// low 32 bits, so a value outside the int32 range does not survive.
func NewInt64(v int64) Variant { return Variant{kind: Int, scalar: uint64(v)} }

// NewUInt64 constructs a UInt Variant from a wider Go integer.
func NewUInt64(v uint64) Variant { return Variant{kind: UInt, scalar: v} }

// NewDouble constructs a Double Variant.
func NewDouble(v float64) Variant { return Variant{kind: Double, scalar: math.Float64bits(v)} }

// NewString constructs a String Variant, choosing inline vs heap storage
// per the small-buffer boundary.
func NewString(v string) Variant { return newTextVariant(String, []byte(v)) }

// NewByteStringTag disambiguates byte-string construction from string
// construction when the Go source value (a []byte) could be read either
// way.
type NewByteStringTag struct{}

// AcceptByteString is passed to NewByteString to make the byte-string
// intent explicit at call sites.
var AcceptByteString = NewByteStringTag{}

// NewByteString constructs a ByteString Variant.
func NewByteString(_ NewByteStringTag, v []byte) Variant {
	return newTextVariant(ByteString, v)
}

func newTextVariant(kind Kind, v []byte) Variant {
	if len(v) <= inlineCapacity {
		var vv Variant
		vv.kind = kind
		vv.buf = BufferCopy
		vv.count = uint32(len(v))
		copy(vv.small[:], v)
		return vv
	}
	return Variant{kind: kind, buf: BufferRefcount, count: uint32(len(v)), shared: newBytesBuffer(v)}
}

// NewStringCollection constructs a StringCollection Variant from Go
// strings, each becoming a String-kind element.
func NewStringCollection(items []string) Variant {
	elems := make([]Variant, len(items))
	for i, s := range items {
		elems[i] = NewString(s)
	}
	return Variant{kind: StringCollection, buf: BufferRefcount, count: uint32(len(elems)), shared: newItemsBuffer(elems)}
}

// NewVariantCollection constructs a VariantCollection Variant.
func NewVariantCollection(items []Variant) Variant {
	return Variant{kind: VariantCollection, buf: BufferRefcount, count: uint32(len(items)), shared: newItemsBuffer(items)}
}

// NewMap constructs an empty Map Variant. Entries are added with SetItem.
func NewMap() Variant {
	return Variant{kind: Map, buf: BufferRefcount, count: 0, shared: newItemsBuffer(nil)}
}

// NewObject constructs a Variant wrapping a reflected object. An object
// whose EmbeddedSize() is nonzero is automatically stored as
// ObjectEmbedded (a cloned value copy in a shared
// heap buffer); otherwise it is stored as Object, a borrowed reference the
// Variant does not own.
func NewObject(obj Object) Variant {
	if obj == nil {
		return NewEmpty()
	}
	if obj.EmbeddedSize() > 0 {
		if em, ok := obj.(Embeddable); ok {
			return Variant{kind: ObjectEmbedded, buf: BufferRefcount, shared: newObjectBuffer(em.CloneEmbedded())}
		}
	}
	return Variant{kind: Object, buf: BufferNone, shared: &sharedBuffer{refs: 1, obj: obj}}
}

// Disposer may be implemented by an Object to release resources when a
// Variant that owns it is cleared with SetEmptyWithObjectDelete.
type Disposer interface {
	Dispose()
}

// SetEmpty resets the Variant to Empty, releasing its payload reference.
func (v *Variant) SetEmpty() {
	*v = Variant{kind: Empty}
}

// SetEmptyWithObjectDelete resets the Variant to Empty with ownership
// transfer semantics: a wrapped Object that implements Disposer is
// disposed, and collections descend recursively so owned objects at any
// depth are released.
func (v *Variant) SetEmptyWithObjectDelete() {
	switch v.kind {
	case Object, ObjectEmbedded:
		if obj, isNil := v.AsObject(); !isNil {
			if d, ok := obj.(Disposer); ok {
				d.Dispose()
			}
		}
	case StringCollection, VariantCollection, Map:
		for _, item := range v.items() {
			item := item
			item.SetEmptyWithObjectDelete()
		}
	}
	v.SetEmpty()
}

// Kind returns the Variant's kind tag.
func (v Variant) Kind() Kind { return v.kind }

// BufferKind returns the Variant's storage mode.
func (v Variant) BufferKind() BufferKind { return v.buf }

// IsEmpty reports whether the Variant is of kind Empty.
func (v Variant) IsEmpty() bool { return v.kind == Empty }

// IsNumeric reports whether the Variant's kind participates in arithmetic
// promotion.
func (v Variant) IsNumeric() bool { return v.kind.IsPromotable() && v.kind != Bool }

// IsIndexed reports whether the Variant supports indexing.
func (v Variant) IsIndexed() bool {
	switch v.kind {
	case String, ByteString, StringCollection, VariantCollection, Map:
		return true
	default:
		return false
	}
}

// textBytes returns the raw bytes backing a String/ByteString Variant,
// without copying when possible.
func (v Variant) textBytes() []byte {
	switch v.buf {
	case BufferCopy:
		return v.small[:v.count]
	case BufferRefcount:
		if v.shared == nil {
			return nil
		}
		return v.shared.bytes
	default:
		return nil
	}
}

// items returns the element slice backing a collection/Map Variant.
func (v Variant) items() []Variant {
	if v.shared == nil {
		return nil
	}
	return v.shared.items
}

// GetCount returns the element count, halving the stored count for a Map.
func (v Variant) GetCount() (int, error) {
	switch v.kind {
	case String, ByteString:
		return int(v.count), nil
	case StringCollection, VariantCollection:
		return len(v.items()), nil
	case Map:
		return len(v.items()) / 2, nil
	default:
		return 0, errs.CannotIndexItem("GetCount: kind %s is not indexed", v.kind)
	}
}

// AsObject returns the wrapped Object, if this Variant is of kind Object
// or ObjectEmbedded, and whether the pointer (for kind Object) is nil.
func (v Variant) AsObject() (Object, bool) {
	if v.kind != Object && v.kind != ObjectEmbedded {
		return nil, false
	}
	if v.shared == nil {
		return nil, true
	}
	return v.shared.obj, v.shared.obj == nil
}
