package codec

import (
	"encoding/hex"
	"strings"

	"github.com/metercore/mcore/pkg/errs"
)

// EncodeHex converts bytes into a hexadecimal string. When blanks is
// true, a space separates each byte's pair of digits.
func EncodeHex(data []byte, blanks bool) string {
	if !blanks {
		return hex.EncodeToString(data)
	}
	var b strings.Builder
	b.Grow(len(data) * 3)
	for i, by := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(hex.EncodeToString([]byte{by}))
	}
	return b.String()
}

// DecodeHex converts a hexadecimal string into bytes. Blanks between
// digit pairs are skipped; any other character fails the conversion.
func DecodeHex(s string) ([]byte, error) {
	filtered := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isHexDigit(c) {
			filtered = append(filtered, c)
		} else if !isSpaceOrPunct(c) {
			return nil, errs.BadConversion("hex string %s has a bad character %q at position %d", errs.Quote(s), c, i)
		}
	}
	if len(filtered)%2 != 0 {
		return nil, errs.BadConversion("hex string %s has an odd number of digits", errs.Quote(s))
	}
	out, err := hex.DecodeString(string(filtered))
	if err != nil {
		return nil, errs.BadConversion("cannot decode hex string %s: %v", errs.Quote(s), err)
	}
	return out, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isSpaceOrPunct(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
