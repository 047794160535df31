// Package aeseax implements the AES-EAX authenticated-encryption primitive
// used for ANSI C12.22 message authentication: a 128-bit-key
// EAX construction computing a 32-bit MAC over a caller-supplied "clear
// text" nonce and a variable-length payload.
//
// The BADCODE option reproduces a known-erroneous early draft of the
// C12.22 standard for interoperability testing only; it is never the
// default.
package aeseax

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"github.com/metercore/mcore/pkg/errs"
)

// KeySize is the only key length AES-EAX accepts here.
const KeySize = 16

// macSize is the width of the EAX MAC appended to ciphertext.
const macSize = 4

// Cipher is a keyed AES-EAX context. It is not safe for concurrent use.
type Cipher struct {
	block   cipher.Block
	badCode bool
	l, d, q [KeySize]byte
}

// New constructs a standard-mode AES-EAX cipher from a 128-bit key.
func New(key []byte) (*Cipher, error) {
	return newCipher(key, false)
}

// NewBadCode constructs an AES-EAX cipher running the BADCODE quirk:
// different CTR bit-clear offsets and a byte-reversed MAC, matching an
// erroneous early draft of ANSI C12.22. Use only for interoperability
// testing against that draft.
func NewBadCode(key []byte) (*Cipher, error) {
	return newCipher(key, true)
}

func newCipher(key []byte, badCode bool) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, errs.ValidationFailed("AES-EAX key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.ValidationFailed("invalid AES-EAX key: %v", err)
	}
	c := &Cipher{block: block, badCode: badCode}
	var zero [KeySize]byte
	block.Encrypt(c.l[:], zero[:])
	dbl(&c.d, &c.l)
	dbl(&c.q, &c.d)
	return c, nil
}

// dbl computes the minimal-irreducible-polynomial doubling used to derive
// D from L and Q from D.
func dbl(out, in *[KeySize]byte) {
	var carry byte
	for i := 0; i < KeySize; i++ {
		out[i] = in[i]<<1 | carry
		if in[i]&0x80 != 0 {
			carry = 1
		} else {
			carry = 0
		}
	}
	if carry != 0 {
		out[0] ^= 0x87
	}
}

// cmac runs the CMAC chaining over msg, starting from the seed already
// installed in ws (D for the nonce CMAC, Q for the payload CMAC). The
// full final block is XORed with D; a padded final block is XORed with
// Q, regardless of which seed started the chain. That asymmetry is what
// deployed C12.22 peers compute, not a bug.
func (c *Cipher) cmac(ws *[KeySize]byte, msg []byte) {
	for len(msg) > KeySize {
		xorBlock(ws, (*[KeySize]byte)(msg[:KeySize]))
		c.block.Encrypt(ws[:], ws[:])
		msg = msg[KeySize:]
	}
	switch {
	case len(msg) == KeySize:
		xorBlock(ws, (*[KeySize]byte)(msg))
		xorBlock(ws, &c.d)
		c.block.Encrypt(ws[:], ws[:])
	case len(msg) != 0:
		for i, b := range msg {
			ws[i] ^= b
		}
		ws[len(msg)] ^= 0x80
		xorBlock(ws, &c.q)
		c.block.Encrypt(ws[:], ws[:])
	}
}

func xorBlock(ws, b *[KeySize]byte) {
	for i := range ws {
		ws[i] ^= b[i]
	}
}

// ctr runs the AES-CTR keystream (derived from ws, the nonce CMAC
// result) over data in place, clearing two counter bits first (byte
// offsets 12/14 standard, 1/3 under BADCODE) so the counter never
// carries between the two halves of the block.
func (c *Cipher) ctr(ws *[KeySize]byte, data []byte) {
	var ctr [KeySize]byte
	ctr = *ws
	if c.badCode {
		ctr[1] &= 0x7f
		ctr[3] &= 0x7f
	} else {
		ctr[12] &= 0x7f
		ctr[14] &= 0x7f
	}
	var ks [KeySize]byte
	for len(data) >= KeySize {
		c.block.Encrypt(ks[:], ctr[:])
		for i := 0; i < KeySize; i++ {
			data[i] ^= ks[i]
		}
		data = data[KeySize:]
		incCounter(&ctr)
	}
	if len(data) != 0 {
		c.block.Encrypt(ks[:], ctr[:])
		for i := range data {
			data[i] ^= ks[i]
		}
	}
}

// incCounter increments ctr as a 128-bit big-endian integer.
func incCounter(ctr *[KeySize]byte) {
	for i := KeySize - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			break
		}
	}
}

// mac32 extracts the low 32 bits of ws: the trailing 4 bytes read in
// native order under the standard path, or byte-reversed under BADCODE.
func (c *Cipher) mac32(ws *[KeySize]byte) uint32 {
	raw := ws[KeySize-macSize:]
	if c.badCode {
		return binary.BigEndian.Uint32(raw)
	}
	return binary.LittleEndian.Uint32(raw)
}

// Encrypt runs the EAX encrypt path: it authenticates
// nonce, CTR-encrypts plaintext, authenticates the ciphertext, and returns
// ciphertext with the 4-byte MAC appended.
func (c *Cipher) Encrypt(nonce, plaintext []byte) []byte {
	wsn := c.d
	c.cmac(&wsn, nonce)

	if len(plaintext) == 0 {
		out := make([]byte, macSize)
		binary.LittleEndian.PutUint32(out, c.mac32(&wsn))
		return out
	}

	ciphertext := append([]byte(nil), plaintext...)
	c.ctr(&wsn, ciphertext)

	wsc := c.q
	c.cmac(&wsc, ciphertext)
	xorBlock(&wsc, &wsn)

	out := make([]byte, len(ciphertext)+macSize)
	copy(out, ciphertext)
	binary.LittleEndian.PutUint32(out[len(ciphertext):], c.mac32(&wsc))
	return out
}

// Decrypt runs the EAX decrypt path: it recomputes
// the nonce and ciphertext CMACs (over the still-encrypted bytes) before
// running CTR to recover plaintext, and only returns plaintext if the
// trailing MAC matches; otherwise it returns a validation error and no
// plaintext.
func (c *Cipher) Decrypt(nonce, data []byte) ([]byte, error) {
	if len(data) < macSize {
		return nil, errs.ValidationFailed("AES-EAX data block must be at least %d bytes, got %d", macSize, len(data))
	}
	wantMAC := binary.LittleEndian.Uint32(data[len(data)-macSize:])
	ciphertext := data[:len(data)-macSize]

	wsn := c.d
	c.cmac(&wsn, nonce)

	var gotMAC uint32
	plaintext := append([]byte(nil), ciphertext...)
	if len(ciphertext) == 0 {
		gotMAC = c.mac32(&wsn)
	} else {
		wsc := c.q
		c.cmac(&wsc, ciphertext)
		xorBlock(&wsc, &wsn)
		gotMAC = c.mac32(&wsc)
		c.ctr(&wsn, plaintext)
	}

	if gotMAC != wantMAC {
		return nil, errs.ValidationFailed("AES-EAX authentication failed")
	}
	return plaintext, nil
}

// Authenticate computes the EAX MAC over clearText with no payload:
// equivalent to the zero-payload Encrypt path, returned as the bare
// uint32 rather than wire bytes.
func (c *Cipher) Authenticate(clearText []byte) uint32 {
	wsn := c.d
	c.cmac(&wsn, clearText)
	return c.mac32(&wsn)
}

// EncryptWithKey is the one-shot convenience form: construct a cipher
// from key, then Encrypt.
func EncryptWithKey(key, nonce, plaintext []byte) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(nonce, plaintext), nil
}

// DecryptWithKey is the one-shot convenience form matching StaticEaxDecrypt.
func DecryptWithKey(key, nonce, data []byte) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(nonce, data)
}

// AuthenticateWithKey is the one-shot convenience form matching
// StaticEaxAuthenticate.
func AuthenticateWithKey(key, clearText []byte) (uint32, error) {
	c, err := New(key)
	if err != nil {
		return 0, err
	}
	return c.Authenticate(clearText), nil
}
