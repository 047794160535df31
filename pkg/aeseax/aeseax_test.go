package aeseax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// TestZeroPayloadEqualsAuthenticate:
// Encrypt(key, nonce, "") returns a 4-byte MAC equal to Authenticate(key, nonce).
func TestZeroPayloadEqualsAuthenticate(t *testing.T) {
	c, err := New(testKey())
	require.NoError(t, err)

	nonce := []byte("abcdef")
	wire := c.Encrypt(nonce, nil)
	require.Len(t, wire, 4)

	want := c.Authenticate(nonce)
	got := uint32(wire[0]) | uint32(wire[1])<<8 | uint32(wire[2])<<16 | uint32(wire[3])<<24
	require.Equal(t, want, got)
}

// TestSelfConsistency: Decrypt(key, nonce, Encrypt(key, nonce,
// plaintext)) == plaintext, and tampering any single bit breaks decryption.
func TestSelfConsistency(t *testing.T) {
	c, err := New(testKey())
	require.NoError(t, err)

	nonce := []byte("abcdef")
	plaintext := []byte("hello, metering world")

	ciphertext := c.Encrypt(nonce, plaintext)
	got, err := c.Decrypt(nonce, ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)

	for i := range ciphertext {
		tampered := append([]byte(nil), ciphertext...)
		tampered[i] ^= 0x01
		_, err := c.Decrypt(nonce, tampered)
		require.Error(t, err, "byte %d", i)
	}
}

func TestEmptyPlaintextRoundtrip(t *testing.T) {
	c, err := New(testKey())
	require.NoError(t, err)

	nonce := []byte("n")
	ciphertext := c.Encrypt(nonce, nil)
	plaintext, err := c.Decrypt(nonce, ciphertext)
	require.NoError(t, err)
	require.Empty(t, plaintext)
}

func TestKeyMustBe128Bit(t *testing.T) {
	_, err := New(make([]byte, 24))
	require.Error(t, err)
}

func TestBadCodeModeDiffersFromStandard(t *testing.T) {
	std, err := New(testKey())
	require.NoError(t, err)
	bad, err := NewBadCode(testKey())
	require.NoError(t, err)

	nonce := []byte("abcdef")
	plaintext := []byte("payload")

	stdOut := std.Encrypt(nonce, plaintext)
	badOut := bad.Encrypt(nonce, plaintext)
	require.NotEqual(t, stdOut, badOut, "BADCODE must diverge from the standard path")

	// Each mode must decrypt its own ciphertext.
	gotStd, err := std.Decrypt(nonce, stdOut)
	require.NoError(t, err)
	require.Equal(t, plaintext, gotStd)

	gotBad, err := bad.Decrypt(nonce, badOut)
	require.NoError(t, err)
	require.Equal(t, plaintext, gotBad)
}

func TestConvenienceFunctions(t *testing.T) {
	key := testKey()
	nonce := []byte("nonce")
	plaintext := []byte("data")

	ciphertext, err := EncryptWithKey(key, nonce, plaintext)
	require.NoError(t, err)

	got, err := DecryptWithKey(key, nonce, ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)

	mac, err := AuthenticateWithKey(key, nonce)
	require.NoError(t, err)
	require.NotZero(t, mac)
}
