package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBCDRoundtrip(t *testing.T) {
	enc, err := EncodeBCD(123456, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x12, 0x34, 0x56}, enc)

	dec, err := DecodeBCD(enc)
	require.NoError(t, err)
	require.EqualValues(t, 123456, dec)
}

func TestBCDRejectsBadNibble(t *testing.T) {
	_, err := DecodeBCD([]byte{0xAB})
	require.Error(t, err)
}

func TestBCDOverflow(t *testing.T) {
	_, err := EncodeBCD(123456, 2)
	require.Error(t, err)
}

func TestRAD40Roundtrip(t *testing.T) {
	enc, err := EncodeRAD40("ABC")
	require.NoError(t, err)
	require.Len(t, enc, 2)

	dec, err := DecodeRAD40(enc)
	require.NoError(t, err)
	require.Equal(t, "ABC", dec)
}

func TestRAD40PartialGroupPadded(t *testing.T) {
	enc, err := EncodeRAD40("A")
	require.NoError(t, err)
	dec, err := DecodeRAD40(enc)
	require.NoError(t, err)
	require.Equal(t, "A  ", dec)
}

func TestRAD40RejectsBadChar(t *testing.T) {
	_, err := EncodeRAD40("a!c")
	require.Error(t, err)
}

func TestRAD40TruncatesOddByte(t *testing.T) {
	enc, err := EncodeRAD40("ABC")
	require.NoError(t, err)
	dec, err := DecodeRAD40(append(enc, 0x01))
	require.NoError(t, err)
	require.Equal(t, "ABC", dec)
}

func TestDSPRoundtrip(t *testing.T) {
	enc, err := EncodeDSP(123.45, 2, 4)
	require.NoError(t, err)
	dec, err := DecodeDSP(enc, 2)
	require.NoError(t, err)
	require.InDelta(t, 123.45, dec, 0.001)
}

func TestDSPNegative(t *testing.T) {
	enc, err := EncodeDSP(-5.5, 1, 2)
	require.NoError(t, err)
	dec, err := DecodeDSP(enc, 1)
	require.NoError(t, err)
	require.InDelta(t, -5.5, dec, 0.01)
}

func TestDSPIntSpecialCase(t *testing.T) {
	enc, err := EncodeDSPInt(42, 2)
	require.NoError(t, err)
	dec, err := DecodeDSPInt(enc)
	require.NoError(t, err)
	require.InDelta(t, 42, dec, 0.001)
}

func TestINSTRRoundtrip(t *testing.T) {
	enc, err := EncodeINSTR(12.34, 4, 2)
	require.NoError(t, err)
	require.Len(t, enc, 4)
	dec, err := DecodeINSTR(enc, 2)
	require.NoError(t, err)
	require.InDelta(t, 12.34, dec, 0.001)
}

func TestINSTRNegative(t *testing.T) {
	enc, err := EncodeINSTR(-1.5, 4, 1)
	require.NoError(t, err)
	dec, err := DecodeINSTR(enc, 1)
	require.NoError(t, err)
	require.InDelta(t, -1.5, dec, 0.01)
}

func TestHexRoundtrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0xFF}
	require.Equal(t, "0102ff", EncodeHex(data, false))
	require.Equal(t, "01 02 ff", EncodeHex(data, true))

	dec, err := DecodeHex("01 02 FF")
	require.NoError(t, err)
	require.Equal(t, data, dec)
}

func TestHexRejectsBadChar(t *testing.T) {
	_, err := DecodeHex("01 0G")
	require.Error(t, err)
}

func TestBase64Roundtrip(t *testing.T) {
	data := []byte("hello, metering")
	enc := EncodeBase64(data)
	dec, err := DecodeBase64(enc)
	require.NoError(t, err)
	require.Equal(t, data, dec)
}

func TestNumericRoundtrip(t *testing.T) {
	data := []byte{1, 0, 64, 0, 0, 255}
	s := EncodeNumeric(data, "")
	require.Equal(t, "1.0.64.0.0.255", s)

	dec, err := DecodeNumeric(s)
	require.NoError(t, err)
	require.Equal(t, data, dec)
}

func TestNumericRejectsLetters(t *testing.T) {
	_, err := DecodeNumeric("1.a.3")
	require.Error(t, err)
}
