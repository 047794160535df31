package variant

import (
	"math"
	"strconv"
	"strings"

	"github.com/metercore/mcore/pkg/errs"
)

// asDouble converts the Variant to a float64 following the promotion
// rules, used internally by arithmetic and by AsDouble.
func (v Variant) asDouble() (float64, *errs.Error) {
	switch v.kind {
	case Byte, Char, UInt:
		return float64(uint32(v.scalar)), nil
	case Int:
		return float64(int32(v.scalar)), nil
	case Double:
		return math.Float64frombits(v.scalar), nil
	case String:
		s := strings.TrimSpace(string(v.textBytes()))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errs.BadConversion("cannot convert %s to Double", errs.Quote(s))
		}
		return f, nil
	case Bool:
		return 0, errs.BadConversion("cannot convert Bool to Double")
	case Empty:
		return 0, errs.NoValue("AsDouble on an Empty Variant")
	default:
		return 0, errs.BadConversion("cannot convert %s to Double", v.kind)
	}
}

// AsDouble narrows the Variant to a float64.
func (v Variant) AsDouble() (float64, error) {
	d, err := v.asDouble()
	if err != nil {
		return 0, err
	}
	return d, nil
}

// asInt64 converts the Variant to the widest signed integer, used
// internally by the narrower AsX interpretations.
func (v Variant) asInt64() (int64, *errs.Error) {
	switch v.kind {
	case Byte, Char:
		return int64(v.scalar), nil
	case UInt:
		return int64(uint32(v.scalar)), nil
	case Int:
		return int64(int32(v.scalar)), nil
	case Double:
		d := math.Float64frombits(v.scalar)
		if d != math.Trunc(d) {
			return 0, errs.BadConversion("Double %v has a fractional part", d)
		}
		return int64(d), nil
	case String:
		s := strings.TrimSpace(string(v.textBytes()))
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, errs.BadConversion("cannot convert %s to an integer", errs.Quote(s))
		}
		return n, nil
	case Bool:
		return 0, errs.BadConversion("cannot convert Bool to an integer")
	case Empty:
		return 0, errs.NoValue("AsInt64 on an Empty Variant")
	default:
		return 0, errs.BadConversion("cannot convert %s to an integer", v.kind)
	}
}

// AsInt64 narrows the Variant to an int64.
func (v Variant) AsInt64() (int64, error) {
	n, err := v.asInt64()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// AsUInt64 narrows the Variant to a uint64, rejecting negative values.
func (v Variant) AsUInt64() (uint64, error) {
	n, err := v.asInt64()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errs.NumberOutOfRange("value %d is negative, cannot convert to unsigned", n)
	}
	return uint64(n), nil
}

// AsInt narrows the Variant to a 32-bit signed integer.
func (v Variant) AsInt() (int32, error) {
	n, err := v.asInt64()
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errs.NumberOutOfRange("value %d out of int32 range", n)
	}
	return int32(n), nil
}

// AsUInt narrows the Variant to a 32-bit unsigned integer.
func (v Variant) AsUInt() (uint32, error) {
	n, err := v.asInt64()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, errs.NumberOutOfRange("value %d out of uint32 range", n)
	}
	return uint32(n), nil
}

// AsByte narrows the Variant to a byte.
func (v Variant) AsByte() (byte, error) {
	n, err := v.asInt64()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint8 {
		return 0, errs.NumberOutOfRange("value %d out of byte range", n)
	}
	return byte(n), nil
}

// AsChar narrows the Variant to a one-byte character.
func (v Variant) AsChar() (byte, error) {
	if v.kind == Char {
		return byte(v.scalar), nil
	}
	return v.AsByte()
}

// AsBool converts the Variant to bool following the Perl-style rule:
// "FALSE" (all caps), 0, '\0', and the empty string are false;
// every other non-empty string is true.
func (v Variant) AsBool() (bool, error) {
	switch v.kind {
	case Bool:
		return v.scalar != 0, nil
	case Byte, Char, UInt, Int:
		return v.scalar != 0, nil
	case Double:
		return math.Float64frombits(v.scalar) != 0, nil
	case String, ByteString:
		b := v.textBytes()
		if len(b) == 0 {
			return false, nil
		}
		if len(b) == 1 && b[0] == 0 {
			return false, nil
		}
		if string(b) == "FALSE" {
			return false, nil
		}
		if string(b) == "0" {
			return false, nil
		}
		return true, nil
	case Empty:
		return false, nil
	default:
		return false, errs.BadConversion("cannot convert %s to Bool", v.kind)
	}
}

// AsString renders the Variant as a Go string. Numeric kinds render via
// their canonical decimal form; String/ByteString return their raw bytes
// decoded as UTF-8/Latin-agnostic bytes respectively.
func (v Variant) AsString() (string, error) {
	switch v.kind {
	case String:
		return string(v.textBytes()), nil
	case ByteString:
		return string(v.textBytes()), nil
	case Bool:
		if v.scalar != 0 {
			return "TRUE", nil
		}
		return "FALSE", nil
	case Byte, Char:
		return strconv.FormatUint(v.scalar, 10), nil
	case UInt:
		return strconv.FormatUint(uint64(uint32(v.scalar)), 10), nil
	case Int:
		return strconv.FormatInt(int64(int32(v.scalar)), 10), nil
	case Double:
		return strconv.FormatFloat(math.Float64frombits(v.scalar), 'g', -1, 64), nil
	case Empty:
		return "", nil
	default:
		return "", errs.BadConversion("cannot convert %s to String", v.kind)
	}
}

// AsByteString returns the Variant's raw bytes; valid for ByteString and
// String kinds.
func (v Variant) AsByteString() ([]byte, error) {
	switch v.kind {
	case ByteString, String:
		b := v.textBytes()
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	default:
		return nil, errs.BadConversion("cannot convert %s to ByteString", v.kind)
	}
}
