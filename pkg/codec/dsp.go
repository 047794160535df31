package codec

import (
	"math"

	"github.com/metercore/mcore/pkg/errs"
)

// EncodeDSP packs value as a fixed-point scaled integer of size bytes,
// big-endian two's complement. Integer DSP is the scale-0 special case.
func EncodeDSP(value float64, scale int8, size int) ([]byte, error) {
	if size < 1 || size > 8 {
		return nil, errs.BadConversion("DSP buffer size must be 1..8 bytes, got %d", size)
	}
	scaled := value * math.Pow(10, float64(scale))
	n := int64(math.Round(scaled))
	lo, hi := dspRange(size)
	if n < lo || n > hi {
		return nil, errs.NumberOutOfRange("value %v out of range for a %d-byte DSP field", value, size)
	}
	out := make([]byte, size)
	u := uint64(n)
	for i := size - 1; i >= 0; i-- {
		out[i] = byte(u)
		u >>= 8
	}
	return out, nil
}

// DecodeDSP unpacks a DSP-scaled integer buffer back to its float64 value.
func DecodeDSP(data []byte, scale int8) (float64, error) {
	if len(data) == 0 || len(data) > 8 {
		return 0, errs.BadConversion("DSP buffer must be 1..8 bytes, got %d", len(data))
	}
	var n int64
	if data[0]&0x80 != 0 {
		n = -1
	}
	for _, b := range data {
		n = n<<8 | int64(b)&0xff
	}
	return float64(n) / math.Pow(10, float64(scale)), nil
}

// EncodeDSPInt is the scale-0 special case of EncodeDSP.
func EncodeDSPInt(value float64, size int) ([]byte, error) { return EncodeDSP(value, 0, size) }

// DecodeDSPInt is the scale-0 special case of DecodeDSP.
func DecodeDSPInt(data []byte) (float64, error) { return DecodeDSP(data, 0) }

func dspRange(size int) (int64, int64) {
	bits := uint(size * 8)
	if bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	hi := int64(1)<<(bits-1) - 1
	lo := -(int64(1) << (bits - 1))
	return lo, hi
}
