package codec

import (
	"strconv"
	"strings"

	"github.com/metercore/mcore/pkg/errs"
)

// EncodeINSTR renders value as the C12 "instrumentation profile" numeric
// string format: a fixed-width ASCII digit string
// with an implied decimal point impliedDecimals digits from the right (no
// literal '.' appears in the wire bytes), round-tripping through
// Variant.AsDouble. A negative value's sign consumes the leading byte.
func EncodeINSTR(value float64, width, impliedDecimals int) ([]byte, error) {
	neg := value < 0
	if neg {
		value = -value
	}
	scaled := int64(value*pow10(impliedDecimals) + 0.5)
	digitsWidth := width
	if neg {
		digitsWidth--
	}
	s := formatPadded(uint64(scaled), digitsWidth)
	if len(s) > digitsWidth {
		return nil, errs.NumberOutOfRange("value %v does not fit in a %d-byte INSTR field", value, width)
	}
	if neg {
		s = "-" + s
	}
	return []byte(s), nil
}

// DecodeINSTR parses an INSTR fixed-width ASCII digit string back to its
// double value, given the number of implied decimal digits.
func DecodeINSTR(data []byte, impliedDecimals int) (float64, error) {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0, errs.BadConversion("INSTR buffer is empty")
	}
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, errs.BadConversion("INSTR buffer %s has a non-digit character", errs.Quote(s))
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errs.BadConversion("cannot parse INSTR buffer %s: %v", errs.Quote(s), err)
	}
	v := float64(n) / pow10(impliedDecimals)
	if neg {
		v = -v
	}
	return v, nil
}

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
