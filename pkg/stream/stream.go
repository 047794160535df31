// Package stream provides the self-describing byte stream abstraction used
// throughout this SDK: a uniform read/write/seek contract over pluggable
// devices (memory, file) with a chain of processor decorators for
// buffering, text-mode newline translation, and transparent AES-EAX
// encryption.
package stream

import (
	"github.com/metercore/mcore/pkg/aeseax"
	"github.com/metercore/mcore/pkg/class"
	"github.com/metercore/mcore/pkg/codec"
	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/object"
	"github.com/metercore/mcore/pkg/variant"
)

// Flags describe how a stream was opened. A stream refuses operations that
// fall outside its open flags.
type Flags uint32

const (
	FlagReadOnly  Flags = 0x0001
	FlagWriteOnly Flags = 0x0002
	FlagText      Flags = 0x0004
	FlagBuffered  Flags = 0x0008

	FlagReadWrite = FlagReadOnly | FlagWriteOnly
)

// opType is the last operation direction, cached so direction checks run
// once per switch rather than once per call.
type opType int

const (
	opNone opType = iota
	opRead
	opWrite
)

// Device is the raw byte store at the bottom of a stream's processor
// chain. Position and size are in bytes from the start of the store.
type Device interface {
	Name() string
	// ReadAvailable reads up to len(p) bytes, returning 0 at end of data.
	ReadAvailable(p []byte) (int, error)
	Write(p []byte) error
	Position() (int, error)
	SetPosition(pos int) error
	Size() (int, error)
	SetSize(size int) error
	Close() error
	IsOpen() bool
}

// Stream is the base of the stream tower. Concrete streams (Memory, File)
// embed it; every operation validates the open flags and direction before
// delegating to the processor chain.
type Stream struct {
	object.Base

	dev        Device
	flags      Flags
	lastOp     opType
	chain      layer
	saved      [2]byte
	savedCount int
	key        []byte
}

// initStream wires a device, its processor chain, and the reflection base
// into s. Processors stack innermost-first: crypto sits against the
// device, buffering above it, text translation outermost.
func (s *Stream) initStream(dev Device, flags Flags, key []byte, desc *class.Descriptor, self variant.Object) error {
	if flags&FlagReadWrite == 0 {
		flags |= FlagReadOnly // by convention
	}
	s.Base = object.NewBase(desc, self)
	s.dev = dev
	s.flags = flags
	s.lastOp = opNone
	s.savedCount = 0
	s.chain = &deviceLayer{dev: dev}
	if len(key) > 0 {
		c, err := newCryptoLayer(s.chain, key)
		if err != nil {
			return err
		}
		s.chain = c
		s.key = append([]byte(nil), key...)
	}
	if flags&FlagBuffered != 0 {
		s.chain = newBufferedLayer(s.chain)
	}
	if flags&FlagText != 0 {
		s.chain = newTextLayer(s.chain)
	}
	return nil
}

// Name identifies the stream in error messages.
func (s *Stream) Name() string {
	if s.dev == nil {
		return ""
	}
	return s.dev.Name()
}

// Flags returns the open flags, or 0 when the stream is closed.
func (s *Stream) Flags() Flags { return s.flags }

// IsOpen reports whether the stream accepts operations.
func (s *Stream) IsOpen() bool { return s.flags != 0 && s.dev != nil && s.dev.IsOpen() }

// Key returns the stream's encryption key as a hex string, empty when no
// key is set.
func (s *Stream) Key() string {
	if len(s.key) == 0 {
		return ""
	}
	return codec.EncodeHex(s.key, false)
}

// SetKey installs an encryption key given as hex text and propagates it
// down the processor chain so a cryptographic layer at any depth picks it
// up. An empty string clears the stored key of a stream without a crypto
// layer; an encrypted stream refuses it and keeps its key.
func (s *Stream) SetKey(hexKey string) error {
	var key []byte
	if hexKey != "" {
		var err error
		key, err = codec.DecodeHex(hexKey)
		if err != nil {
			return err
		}
		if len(key) != aeseax.KeySize {
			return errs.ValidationFailed("key must be %d bytes, got %d", aeseax.KeySize, len(key))
		}
	}
	if s.chain != nil {
		if err := s.chain.setKey(key); err != nil {
			return err
		}
	}
	wipe(s.key)
	s.key = key
	return nil
}

// Position returns the current offset in bytes.
func (s *Stream) Position() (int, error) {
	if s.chain == nil {
		return s.dev.Position()
	}
	return s.chain.position()
}

// SetPosition seeks to an absolute offset.
func (s *Stream) SetPosition(pos int) error {
	s.savedCount = 0
	if s.chain == nil {
		return s.dev.SetPosition(pos)
	}
	return s.chain.setPosition(pos)
}

// Size returns the stream length in bytes.
func (s *Stream) Size() (int, error) {
	if s.chain == nil {
		return s.dev.Size()
	}
	return s.chain.size()
}

// SetSize truncates the stream to the given length.
func (s *Stream) SetSize(size int) error {
	if err := s.prepareForOp(opWrite); err != nil {
		return err
	}
	return s.chain.setSize(size)
}

// prepareForOp validates that the stream is open and that the requested
// direction is within the open flags, caching the direction so the check
// runs once per switch.
func (s *Stream) prepareForOp(op opType) error {
	if s.flags == 0 {
		return errs.BadStreamFlag("stream %s is not open", errs.Quote(s.Name()))
	}
	if op != s.lastOp {
		switch op {
		case opWrite:
			if s.flags&FlagWriteOnly == 0 {
				return errs.CannotWriteToReadonlyStream()
			}
		case opRead:
			if s.flags&FlagReadOnly == 0 {
				return errs.CannotReadFromWriteonlyStream()
			}
		}
		s.lastOp = op
	}
	return nil
}

// pushBack returns up to two bytes to the stream so the next read yields
// them first. More than two pending bytes is a programming error.
func (s *Stream) pushBack(b byte) {
	if s.savedCount < len(s.saved) {
		s.saved[s.savedCount] = b
		s.savedCount++
	}
}

// ReadAvailableBytes fills p with up to len(p) bytes and returns the count
// actually read; 0 means end of stream.
func (s *Stream) ReadAvailableBytes(p []byte) (int, error) {
	if err := s.prepareForOp(opRead); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := 0
	for s.savedCount > 0 && n < len(p) {
		s.savedCount--
		p[n] = s.saved[s.savedCount]
		n++
	}
	if n == len(p) {
		return n, nil
	}
	read, err := s.chain.readAvailable(p[n:])
	return n + read, err
}

// ReadBytes fills p exactly, failing with an end-of-stream error on a
// short read.
func (s *Stream) ReadBytes(p []byte) error {
	n, err := s.ReadAvailableBytes(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return errs.EndOfStream("end of stream %s", errs.Quote(s.Name()))
	}
	return nil
}

// ReadByte returns the next byte, or -1 at end of stream.
func (s *Stream) ReadByte() (int, error) {
	var b [1]byte
	n, err := s.ReadAvailableBytes(b[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return -1, nil
	}
	return int(b[0]), nil
}

// Read returns exactly count bytes, failing with an end-of-stream error on
// a short read.
func (s *Stream) Read(count int) ([]byte, error) {
	if count == 0 {
		// still runs the direction checks, by convention
		return nil, s.ReadBytes(nil)
	}
	buf := make([]byte, count)
	if err := s.ReadBytes(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadAvailable returns up to count bytes, shorter (possibly empty) at end
// of stream.
func (s *Stream) ReadAvailable(count int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	buf := make([]byte, count)
	n, err := s.ReadAvailableBytes(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// ReadAll returns everything from the current position to the end of the
// stream.
func (s *Stream) ReadAll() ([]byte, error) {
	var result []byte
	buf := make([]byte, 0x1000)
	for {
		n, err := s.ReadAvailableBytes(buf)
		if err != nil {
			return nil, err
		}
		result = append(result, buf[:n]...)
		if n != len(buf) {
			return result, nil
		}
	}
}

// ReadOneLine reads up to the next '\n', dropping every '\r'. The second
// return is false when the stream was already at its end.
func (s *Stream) ReadOneLine() (string, bool, error) {
	var line []byte
	var b [1]byte
	for {
		n, err := s.ReadAvailableBytes(b[:])
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			if len(line) == 0 {
				return "", false, nil
			}
			break
		}
		if b[0] == '\n' {
			break
		}
		if b[0] != '\r' { // by convention, ignore \r
			line = append(line, b[0])
		}
	}
	return string(line), true, nil
}

// ReadLine reads one line as a Variant, Empty at end of stream.
func (s *Stream) ReadLine() (variant.Variant, error) {
	line, ok, err := s.ReadOneLine()
	if err != nil {
		return variant.Variant{}, err
	}
	if !ok {
		return variant.NewEmpty(), nil
	}
	return variant.NewString(line), nil
}

// ReadAllLines reads the remaining lines.
func (s *Stream) ReadAllLines() ([]string, error) {
	var result []string
	for {
		line, ok, err := s.ReadOneLine()
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, line)
	}
}

// WriteBytes writes p in full.
func (s *Stream) WriteBytes(p []byte) error {
	if err := s.prepareForOp(opWrite); err != nil {
		return err
	}
	return s.chain.write(p)
}

// WriteByte writes a single byte.
func (s *Stream) WriteByte(b byte) error {
	return s.WriteBytes([]byte{b})
}

// Write writes the byte string in full.
func (s *Stream) Write(data []byte) error { return s.WriteBytes(data) }

// WriteLine writes str followed by a newline; a trailing '\n' already in
// str is not doubled.
func (s *Stream) WriteLine(str string) error {
	if str != "" {
		if err := s.WriteBytes([]byte(str)); err != nil {
			return err
		}
		if str[len(str)-1] == '\n' {
			return nil
		}
	}
	return s.WriteByte('\n')
}

// WriteAllLines writes each string as its own line.
func (s *Stream) WriteAllLines(lines []string) error {
	for _, line := range lines {
		if err := s.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Skip reads and discards count bytes, failing at end of stream.
func (s *Stream) Skip(count int) error {
	var buf [256]byte
	for count > 0 {
		chunk := len(buf)
		if chunk > count {
			chunk = count
		}
		if err := s.ReadBytes(buf[:chunk]); err != nil {
			return err
		}
		count -= chunk
	}
	return nil
}

// Flush forces buffered bytes down to the device. Mid-stream flush is
// "hard": layers keep back bytes they cannot emit without breaking their
// own framing.
func (s *Stream) Flush() error {
	if err := s.prepareForOp(opWrite); err != nil {
		return err
	}
	return s.chain.flush(false)
}

// Close flushes pending writes with the terminal "soft" flush, tears the
// processor chain down, and releases the device. Close is idempotent.
func (s *Stream) Close() error {
	if s.flags == 0 {
		s.chain = nil
		return nil
	}
	var firstErr error
	if s.lastOp == opWrite {
		if err := s.chain.flush(true); err != nil {
			firstErr = err
		}
	}
	if err := s.chain.close(); err != nil && firstErr == nil {
		firstErr = err
	}
	s.flags = 0
	s.lastOp = opNone
	s.savedCount = 0
	s.chain = nil
	wipe(s.key)
	s.key = nil
	return firstErr
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
