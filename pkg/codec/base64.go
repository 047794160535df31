package codec

import (
	"encoding/base64"

	"github.com/metercore/mcore/pkg/errs"
)

// EncodeBase64 encodes data as standard RFC-4648 Base64.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes a standard RFC-4648 Base64 string.
func DecodeBase64(s string) ([]byte, error) {
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.BadConversion("cannot decode base64 string %s: %v", errs.Quote(s), err)
	}
	return out, nil
}
