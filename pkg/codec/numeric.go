package codec

import (
	"strconv"
	"strings"

	"github.com/metercore/mcore/pkg/errs"
)

// defaultNumericFormat is the empty-format default.
const defaultNumericFormat = "b."

// EncodeNumeric renders data as a numeric-byte-string using format as a
// cyclically repeated template: each 'b'/'B' token consumes one byte,
// rendered as its decimal value; every other character is copied through
// literally. An empty format defaults to "b." (dotted-decimal, as in an
// IP address).
func EncodeNumeric(data []byte, format string) string {
	if format == "" {
		format = defaultNumericFormat
	}
	var out strings.Builder
	fi := 0
	for _, b := range data {
		for fi < len(format) && !isByteToken(format[fi]) {
			out.WriteByte(format[fi])
			fi++
			if fi >= len(format) {
				fi = 0
			}
		}
		out.WriteString(strconv.Itoa(int(b)))
		fi++
		if fi >= len(format) {
			fi = 0
		}
	}
	return out.String()
}

func isByteToken(c byte) bool { return c == 'b' || c == 'B' }

// DecodeNumeric parses a numeric-byte-string back into bytes: any
// sequence of digits represents the decimal value of one byte, an ASCII
// letter is rejected, and any other character is a separator.
func DecodeNumeric(s string) ([]byte, error) {
	var out []byte
	start := -1
	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		n, err := strconv.Atoi(s[start:end])
		if err != nil || n < 0 || n > 255 {
			return errs.BadConversion("numeric byte string %s has an out-of-range byte value %q", errs.Quote(s), s[start:end])
		}
		out = append(out, byte(n))
		start = -1
		return nil
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			return nil, errs.BadConversion("numeric byte string %s has a letter at position %d", errs.Quote(s), i)
		}
		if err := flush(i); err != nil {
			return nil, err
		}
	}
	if err := flush(len(s)); err != nil {
		return nil, err
	}
	return out, nil
}
