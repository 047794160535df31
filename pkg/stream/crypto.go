package stream

import (
	"encoding/binary"

	"github.com/metercore/mcore/pkg/aeseax"
	"github.com/metercore/mcore/pkg/errs"
)

// cryptoPageSize is the plaintext unit the crypto layer seals at a time.
// Each page goes to the layer below as one authenticated record:
// ciphertext followed by the 4-byte MAC.
const cryptoPageSize = 1024

const cryptoRecordSize = cryptoPageSize + 4

// cryptoLayer transparently encrypts written bytes and decrypts read
// bytes with AES-EAX. Records are sealed under a monotonically increasing
// page counter used as the nonce, so a stream is a sequence of
// independently authenticated pages; only the final page may be short,
// which is why a mid-stream (hard) flush keeps a partial page back and
// only the terminal (soft) flush releases it. Encrypted streams are
// sequential: position and size queries are refused.
type cryptoLayer struct {
	next   layer
	cipher *aeseax.Cipher
	wpage  []byte // pending plaintext, cap cryptoPageSize
	rbuf   []byte // decrypted bytes not yet consumed
	wcount uint64 // next write record number
	rcount uint64 // next read record number
	rdone  bool   // read side saw a short (final) record or end of data
}

func newCryptoLayer(next layer, key []byte) (*cryptoLayer, error) {
	c, err := aeseax.New(key)
	if err != nil {
		return nil, err
	}
	return &cryptoLayer{next: next, cipher: c, wpage: make([]byte, 0, cryptoPageSize)}, nil
}

func recordNonce(counter uint64) []byte {
	var nonce [8]byte
	binary.LittleEndian.PutUint64(nonce[:], counter)
	return nonce[:]
}

func (c *cryptoLayer) sealPage() error {
	record := c.cipher.Encrypt(recordNonce(c.wcount), c.wpage)
	c.wcount++
	c.wpage = c.wpage[:0]
	return c.next.write(record)
}

func (c *cryptoLayer) write(p []byte) error {
	for len(p) > 0 {
		room := cap(c.wpage) - len(c.wpage)
		if room == 0 {
			if err := c.sealPage(); err != nil {
				return err
			}
			room = cap(c.wpage)
		}
		if room > len(p) {
			room = len(p)
		}
		c.wpage = append(c.wpage, p[:room]...)
		p = p[room:]
	}
	return nil
}

func (c *cryptoLayer) flush(soft bool) error {
	if soft && len(c.wpage) > 0 {
		if err := c.sealPage(); err != nil {
			return err
		}
	}
	return c.next.flush(soft)
}

// fillRecord reads one full record from below, shorter only at the end of
// the underlying data.
func (c *cryptoLayer) fillRecord() error {
	record := make([]byte, cryptoRecordSize)
	n := 0
	for n < len(record) {
		got, err := c.next.readAvailable(record[n:])
		if err != nil {
			return err
		}
		if got == 0 {
			break
		}
		n += got
	}
	if n == 0 {
		c.rdone = true
		return nil
	}
	if n < 4 {
		return errs.ValidationFailed("stream record is truncated (%d bytes)", n)
	}
	plain, err := c.cipher.Decrypt(recordNonce(c.rcount), record[:n])
	if err != nil {
		return err
	}
	c.rcount++
	c.rbuf = plain
	if n < cryptoRecordSize {
		c.rdone = true // short record is the final one
	}
	return nil
}

func (c *cryptoLayer) readAvailable(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(c.rbuf) == 0 {
			if c.rdone {
				return n, nil
			}
			if err := c.fillRecord(); err != nil {
				return n, err
			}
			if len(c.rbuf) == 0 {
				return n, nil
			}
		}
		copied := copy(p[n:], c.rbuf)
		c.rbuf = c.rbuf[copied:]
		n += copied
	}
	return n, nil
}

func (c *cryptoLayer) position() (int, error) { return 0, errOperationNotSupported("get position") }
func (c *cryptoLayer) setPosition(int) error  { return errOperationNotSupported("set position") }
func (c *cryptoLayer) size() (int, error)     { return 0, errOperationNotSupported("get size") }
func (c *cryptoLayer) setSize(int) error      { return errOperationNotSupported("set size") }

func (c *cryptoLayer) close() error { return c.next.close() }

func (c *cryptoLayer) setKey(key []byte) error {
	if len(key) == 0 {
		return errs.ValidationFailed("cannot clear the key of an encrypted stream")
	}
	cipher, err := aeseax.New(key)
	if err != nil {
		return err
	}
	c.cipher = cipher
	return nil
}
