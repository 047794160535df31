package variant

import (
	"math"

	"github.com/metercore/mcore/pkg/errs"
)

// promoteOperands applies the promotion rules: booleans are rejected,
// Empty has no value to promote, and otherwise the wider kind (by
// promotion order) wins.
func promoteOperands(a, b Variant) (Kind, *errs.Error) {
	if a.kind == Empty || b.kind == Empty {
		return 0, errs.NoValue("arithmetic on an Empty Variant")
	}
	if a.kind == Bool || b.kind == Bool {
		return 0, errs.BadConversion("boolean operands are rejected for arithmetic")
	}
	if !a.kind.IsPromotable() || !b.kind.IsPromotable() {
		return 0, errs.BadConversion("incompatible kinds %s and %s for arithmetic", a.kind, b.kind)
	}
	return maxPromotable(a.kind, b.kind), nil
}

func fitSigned(r int64) Variant {
	if r >= math.MinInt32 && r <= math.MaxInt32 {
		return NewInt(int32(r))
	}
	return NewDouble(float64(r))
}

func fitUnsigned(r uint64) Variant {
	if r <= math.MaxUint8 {
		return NewByte(byte(r))
	}
	if r <= math.MaxUint32 {
		return NewUInt(uint32(r))
	}
	return NewDouble(float64(r))
}

// binaryArith runs one numeric operator: the promoted kind picks which
// width the operation runs at, and fitSigned/fitUnsigned narrow the
// result back down when it fits, falling back to Double otherwise.
func binaryArith(a, b Variant, op byte) (Variant, error) {
	promoted, perr := promoteOperands(a, b)
	if perr != nil {
		return Variant{}, perr
	}

	if promoted == Double {
		x, _ := a.asDouble()
		y, _ := b.asDouble()
		switch op {
		case '+':
			return NewDouble(x + y), nil
		case '-':
			return NewDouble(x - y), nil
		case '*':
			return NewDouble(x * y), nil
		case '/':
			if y == 0 {
				return Variant{}, errs.DivisionByZero("division by zero")
			}
			return NewDouble(x / y), nil
		}
	}

	if promoted == Int {
		x, _ := a.asInt64()
		y, _ := b.asInt64()
		switch op {
		case '+':
			return fitSigned(x + y), nil
		case '-':
			return fitSigned(x - y), nil
		case '*':
			return fitSigned(x * y), nil
		case '/':
			if y == 0 {
				return Variant{}, errs.DivisionByZero("division by zero")
			}
			return fitSigned(x / y), nil
		}
	}

	// Unsigned family: Byte, Char, UInt.
	x, _ := a.asInt64()
	y, _ := b.asInt64()
	ux, uy := uint64(x), uint64(y)
	switch op {
	case '+':
		return fitUnsigned(ux + uy), nil
	case '-':
		if uy > ux {
			return fitSigned(x - y), nil
		}
		return fitUnsigned(ux - uy), nil
	case '*':
		return fitUnsigned(ux * uy), nil
	case '/':
		if uy == 0 {
			return Variant{}, errs.DivisionByZero("division by zero")
		}
		return fitUnsigned(ux / uy), nil
	}
	panic("unreachable arithmetic op")
}

// Add implements Variant addition, including collection/Map "+="
// semantics when the left operand is a collection. For scalar kinds it
// follows the promotion rules above.
func Add(a, b Variant) (Variant, error) {
	switch a.kind {
	case StringCollection, VariantCollection:
		return collectionExtend(a, b)
	case Map:
		return mapAdd(a, b)
	case String, ByteString:
		ab, err := a.AsByteString()
		if err != nil {
			return Variant{}, err
		}
		bb, err := b.AsByteString()
		if err != nil {
			return Variant{}, err
		}
		return newTextVariant(a.kind, append(append([]byte{}, ab...), bb...)), nil
	default:
		return binaryArith(a, b, '+')
	}
}

// Sub implements Variant subtraction, including collection/Map "-="
// removal semantics.
func Sub(a, b Variant) (Variant, error) {
	switch a.kind {
	case StringCollection, VariantCollection, Map:
		return collectionRemove(a, b)
	default:
		return binaryArith(a, b, '-')
	}
}

// Mul implements Variant multiplication.
func Mul(a, b Variant) (Variant, error) { return binaryArith(a, b, '*') }

// Div implements Variant division.
func Div(a, b Variant) (Variant, error) { return binaryArith(a, b, '/') }

// Inc returns v+1, throwing Overflow if the increment would overflow the
// narrowest representable range for v's own kind.
func Inc(v Variant) (Variant, error) {
	switch v.kind {
	case Byte, Char:
		if v.scalar >= math.MaxUint8 {
			return Variant{}, errs.Overflow("increment overflowed %s", v.kind)
		}
		return Variant{kind: v.kind, scalar: v.scalar + 1}, nil
	case UInt:
		if uint32(v.scalar) == math.MaxUint32 {
			return Variant{}, errs.Overflow("increment overflowed UInt")
		}
		return NewUInt(uint32(v.scalar) + 1), nil
	case Int:
		if int32(v.scalar) == math.MaxInt32 {
			return Variant{}, errs.Overflow("increment overflowed Int")
		}
		return NewInt(int32(v.scalar) + 1), nil
	case Double:
		return NewDouble(math.Float64frombits(v.scalar) + 1), nil
	case Empty:
		return Variant{}, errs.NoValue("increment of an Empty Variant")
	default:
		return Variant{}, errs.BadConversion("cannot increment %s", v.kind)
	}
}

// Dec returns v-1, throwing Underflow on the equivalent unsigned
// boundary.
func Dec(v Variant) (Variant, error) {
	switch v.kind {
	case Byte, Char, UInt:
		if v.scalar == 0 {
			return Variant{}, errs.Underflow("decrement underflowed %s", v.kind)
		}
		if v.kind == UInt {
			return NewUInt(uint32(v.scalar) - 1), nil
		}
		return Variant{kind: v.kind, scalar: v.scalar - 1}, nil
	case Int:
		if int32(v.scalar) == math.MinInt32 {
			return Variant{}, errs.Underflow("decrement underflowed Int")
		}
		return NewInt(int32(v.scalar) - 1), nil
	case Double:
		return NewDouble(math.Float64frombits(v.scalar) - 1), nil
	case Empty:
		return Variant{}, errs.NoValue("decrement of an Empty Variant")
	default:
		return Variant{}, errs.BadConversion("cannot decrement %s", v.kind)
	}
}
