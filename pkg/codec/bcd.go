// Package codec implements the metering wire codecs: BCD, RAD40, DSP
// numeric, INSTR, hex, Base64, and numeric-byte-string.
package codec

import (
	"github.com/metercore/mcore/pkg/errs"
)

// EncodeBCD packs an unsigned integer as binary-coded decimal: two digits
// per byte, big-endian digit order.  size is the
// desired byte length of the result; the decimal rendering of value is
// left-padded with zero digits to fill it. A size of 0 or less selects
// the minimal length, the fewest bytes that hold every digit of value.
func EncodeBCD(value uint64, size int) ([]byte, error) {
	if size <= 0 {
		size = (len(formatPadded(value, 0)) + 1) / 2
	}
	digits := size * 2
	s := formatPadded(value, digits)
	if len(s) > digits {
		return nil, errs.NumberOutOfRange("value %d does not fit in a %d-byte BCD buffer", value, size)
	}
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		hi := s[2*i] - '0'
		lo := s[2*i+1] - '0'
		out[i] = hi<<4 | lo
	}
	return out, nil
}

// DecodeBCD unpacks a BCD byte buffer to its represented unsigned integer,
// rejecting any nibble greater than 9.
func DecodeBCD(data []byte) (uint64, error) {
	var v uint64
	for _, b := range data {
		hi, lo := b>>4, b&0x0f
		if hi > 9 || lo > 9 {
			return 0, errs.BadConversion("BCD byte %s has a nibble out of 0..9 range", errs.Quote(b))
		}
		v = v*100 + uint64(hi)*10 + uint64(lo)
	}
	return v, nil
}

// formatPadded renders value in decimal, left-padded with zeros to at
// least width digits.
func formatPadded(value uint64, width int) string {
	digits := make([]byte, 0, width)
	if value == 0 {
		digits = append(digits, '0')
	}
	for value > 0 {
		digits = append(digits, byte('0'+value%10))
		value /= 10
	}
	for len(digits) < width {
		digits = append(digits, '0')
	}
	// digits were accumulated least-significant first; reverse.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
