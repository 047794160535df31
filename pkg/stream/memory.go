package stream

import "github.com/metercore/mcore/pkg/errs"

// memoryDevice is a growable in-memory byte store.
type memoryDevice struct {
	buf []byte
	pos int
}

func (m *memoryDevice) Name() string { return "<memory>" }

func (m *memoryDevice) ReadAvailable(p []byte) (int, error) {
	if m.pos >= len(m.buf) {
		return 0, nil
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += n
	return n, nil
}

func (m *memoryDevice) Write(p []byte) error {
	overlap := len(m.buf) - m.pos
	if overlap > 0 {
		if overlap > len(p) {
			overlap = len(p)
		}
		copy(m.buf[m.pos:], p[:overlap])
		m.pos += overlap
		p = p[overlap:]
	}
	m.buf = append(m.buf, p...)
	m.pos += len(p)
	return nil
}

func (m *memoryDevice) Position() (int, error) { return m.pos, nil }

func (m *memoryDevice) SetPosition(pos int) error {
	if pos < 0 || pos > len(m.buf) {
		return errs.EndOfStream("end of stream %s", errs.Quote(m.Name()))
	}
	m.pos = pos
	return nil
}

func (m *memoryDevice) Size() (int, error) { return len(m.buf), nil }

func (m *memoryDevice) SetSize(size int) error {
	if size < 0 || size > len(m.buf) {
		return errs.EndOfStream("end of stream %s", errs.Quote(m.Name()))
	}
	if size < len(m.buf) {
		m.buf = m.buf[:size]
		m.pos = size
	}
	return nil
}

func (m *memoryDevice) Close() error {
	m.pos = 0
	return nil
}

// IsOpen is always true: even a closed memory stream keeps its buffer.
func (m *memoryDevice) IsOpen() bool { return true }

// Memory is an in-memory random-access stream over a growable buffer.
type Memory struct {
	Stream
	mem *memoryDevice
}

// NewMemory opens an empty read-write memory stream.
func NewMemory() (*Memory, error) {
	return NewMemoryBytes(nil, FlagReadWrite)
}

// NewMemoryBytes opens a memory stream primed with data.
func NewMemoryBytes(data []byte, flags Flags) (*Memory, error) {
	return NewMemoryBytesWithKey(data, flags, nil)
}

// NewMemoryBytesWithKey opens an encrypted memory stream; key must be a
// valid AES-EAX key.
func NewMemoryBytesWithKey(data []byte, flags Flags, key []byte) (*Memory, error) {
	m := &Memory{mem: &memoryDevice{buf: append([]byte(nil), data...)}}
	if err := m.initStream(m.mem, flags, key, memoryClass, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Buffer returns the current contents of the backing buffer.
func (m *Memory) Buffer() []byte {
	out := make([]byte, len(m.mem.buf))
	copy(out, m.mem.buf)
	return out
}

// CloseAndClear closes the stream and discards the buffer.
func (m *Memory) CloseAndClear() error {
	err := m.Close()
	m.mem.buf = nil
	m.mem.pos = 0
	return err
}
