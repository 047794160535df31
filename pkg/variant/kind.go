// Package variant implements the dynamically typed value at the center of
// this SDK: a tagged union over 15 kinds with in-place small-buffer
// optimization, copy-on-write heap buffers for strings and collections, and
// numeric promotion across the scalar kinds.
package variant

import "fmt"

// Kind is the Variant's closed discriminator set.
type Kind uint8

const (
	Empty Kind = iota
	Bool
	Byte
	Char
	UInt
	Int
	Double
	ByteString
	String
	StringCollection
	Object
	ObjectEmbedded
	VariantCollection
	Map
	VariantMeta
	numKinds
)

// promotionOrder gives each numeric/bool kind's rank for binary-operator
// promotion. Non-numeric kinds have no promotion rank.
var promotionOrder = map[Kind]int{
	Bool:   0,
	Byte:   1,
	Char:   2,
	UInt:   3,
	Int:    4,
	Double: 5,
}

// IsPromotable reports whether k participates in arithmetic/comparison
// promotion.
func (k Kind) IsPromotable() bool {
	_, ok := promotionOrder[k]
	return ok
}

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Bool:
		return "Bool"
	case Byte:
		return "Byte"
	case Char:
		return "Char"
	case UInt:
		return "UInt"
	case Int:
		return "Int"
	case Double:
		return "Double"
	case ByteString:
		return "ByteString"
	case String:
		return "String"
	case StringCollection:
		return "StringCollection"
	case Object:
		return "Object"
	case ObjectEmbedded:
		return "ObjectEmbedded"
	case VariantCollection:
		return "VariantCollection"
	case Map:
		return "Map"
	case VariantMeta:
		return "VariantMeta"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// BufferKind separates the three storage modes a Variant's payload can use.
type BufferKind uint8

const (
	// BufferNone: scalar value lives in the Variant's own inline field.
	BufferNone BufferKind = iota
	// BufferCopy: payload lives in an inline buffer (<=7 bytes).
	BufferCopy
	// BufferRefcount: payload lives in a shared, copy-on-write heap buffer.
	BufferRefcount
)

// inlineCapacity is the small-buffer-optimization boundary: a String or
// ByteString shorter than 8 bytes lives inline, anything longer goes to a
// shared heap buffer.
const inlineCapacity = 7

// maxPromotable returns the wider of two promotable kinds. A kind that is
// not promotable ranks like Bool (0) rather than failing; callers must
// check IsPromotable first.
func maxPromotable(a, b Kind) Kind {
	if promotionOrder[a] >= promotionOrder[b] {
		return a
	}
	return b
}
