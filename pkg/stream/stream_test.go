package stream

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/variant"
)

func errCode(t *testing.T, err error) errs.Code {
	t.Helper()
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	return e.Code
}

func TestMemoryReadWrite(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)

	require.NoError(t, m.Write([]byte("hello world")))
	require.NoError(t, m.SetPosition(0))

	data, err := m.Read(5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	pos, err := m.Position()
	require.NoError(t, err)
	assert.Equal(t, 5, pos)

	rest, err := m.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte(" world"), rest)

	b, err := m.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, -1, b)
}

func TestMemoryOverwriteMidBuffer(t *testing.T) {
	m, err := NewMemoryBytes([]byte("abcdef"), FlagReadWrite)
	require.NoError(t, err)
	require.NoError(t, m.SetPosition(2))
	require.NoError(t, m.Write([]byte("XYZW")))
	assert.Equal(t, []byte("abXYZW"), m.Buffer())

	// writing past the end grows the buffer
	require.NoError(t, m.Write([]byte("!!")))
	assert.Equal(t, []byte("abXYZW!!"), m.Buffer())
}

func TestDirectionDiscipline(t *testing.T) {
	ro, err := NewMemoryBytes([]byte("data"), FlagReadOnly)
	require.NoError(t, err)
	err = ro.Write([]byte("x"))
	assert.Equal(t, errs.CodeCannotWriteToReadonlyStream, errCode(t, err))

	wo, err := NewMemoryBytes(nil, FlagWriteOnly)
	require.NoError(t, err)
	_, err = wo.Read(1)
	assert.Equal(t, errs.CodeCannotReadFromWriteonlyStream, errCode(t, err))
}

func TestSkipAdvancesPosition(t *testing.T) {
	m, err := NewMemoryBytes([]byte("0123456789"), FlagReadWrite)
	require.NoError(t, err)
	_, err = m.Read(2)
	require.NoError(t, err)
	before, _ := m.Position()
	require.NoError(t, m.Skip(3))
	after, _ := m.Position()
	assert.Equal(t, before+3, after)

	err = m.Skip(100)
	assert.Equal(t, errs.CodeEndOfStream, errCode(t, err))
}

func TestClosedStreamRefusesOperations(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // idempotent

	err = m.Write([]byte("x"))
	assert.Equal(t, errs.CodeBadStreamFlag, errCode(t, err))
	_, err = m.Read(1)
	assert.Equal(t, errs.CodeBadStreamFlag, errCode(t, err))
}

func TestLines(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)
	require.NoError(t, m.WriteAllLines([]string{"alpha", "beta", "gamma\n"}))
	require.NoError(t, m.SetPosition(0))

	lines, err := m.ReadAllLines()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, lines)

	require.NoError(t, m.SetPosition(0))
	v, err := m.ReadLine()
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "alpha", s)
}

func TestReadLineAtEndIsEmptyVariant(t *testing.T) {
	m, err := NewMemoryBytes(nil, FlagReadWrite)
	require.NoError(t, err)
	v, err := m.ReadLine()
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestTextModeTranslation(t *testing.T) {
	m, err := NewMemoryBytes(nil, FlagReadWrite|FlagText)
	require.NoError(t, err)
	require.NoError(t, m.WriteLine("one"))
	require.NoError(t, m.WriteLine("two"))
	assert.Equal(t, []byte("one\r\ntwo\r\n"), m.Buffer())

	require.NoError(t, m.SetPosition(0))
	all, err := m.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("one\ntwo\n"), all)
}

func TestTextModeOffByDefault(t *testing.T) {
	m, err := NewMemoryBytes(nil, FlagReadWrite)
	require.NoError(t, err)
	require.NoError(t, m.WriteLine("one"))
	assert.Equal(t, []byte("one\n"), m.Buffer())
}

func TestBufferedRoundTrip(t *testing.T) {
	m, err := NewMemoryBytes(nil, FlagReadWrite|FlagBuffered)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("abcdefgh"), 2048) // crosses page boundaries
	require.NoError(t, m.Write(payload))

	pos, err := m.Position()
	require.NoError(t, err)
	assert.Equal(t, len(payload), pos)

	require.NoError(t, m.Flush())
	require.NoError(t, m.SetPosition(0))

	got, err := m.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestBufferedDirectionSwitch(t *testing.T) {
	m, err := NewMemoryBytes([]byte("0123456789"), FlagReadWrite|FlagBuffered)
	require.NoError(t, err)

	head, err := m.Read(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123"), head)

	// switching to write lands at the logical read position
	require.NoError(t, m.Write([]byte("XY")))
	require.NoError(t, m.Flush())
	require.NoError(t, m.SetPosition(0))
	all, err := m.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("0123XY6789"), all)
}

func TestSetSizeTruncates(t *testing.T) {
	m, err := NewMemoryBytes([]byte("0123456789"), FlagReadWrite)
	require.NoError(t, err)
	require.NoError(t, m.SetSize(4))
	size, err := m.Size()
	require.NoError(t, err)
	assert.Equal(t, 4, size)
	assert.Equal(t, []byte("0123"), m.Buffer())
}

func TestKeyRoundTripsAsHex(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)
	assert.Equal(t, "", m.Key())

	require.NoError(t, m.SetKey("000102030405060708090A0B0C0D0E0F"))
	assert.Equal(t, "000102030405060708090a0b0c0d0e0f", m.Key())

	err = m.SetKey("0011")
	require.Error(t, err)
}

func TestCryptoRoundTrip(t *testing.T) {
	key := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	payload := bytes.Repeat([]byte("metering"), 1000) // several pages

	enc, err := NewMemoryBytesWithKey(nil, FlagReadWrite, key)
	require.NoError(t, err)
	require.NoError(t, enc.Write(payload))
	require.NoError(t, enc.Close())

	sealed := enc.Buffer()
	require.NotEqual(t, payload, sealed)
	require.Greater(t, len(sealed), len(payload)) // per-page MACs

	dec, err := NewMemoryBytesWithKey(sealed, FlagReadOnly, key)
	require.NoError(t, err)
	got, err := dec.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCryptoTamperDetected(t *testing.T) {
	key := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	enc, err := NewMemoryBytesWithKey(nil, FlagReadWrite, key)
	require.NoError(t, err)
	require.NoError(t, enc.Write([]byte("sensitive payload")))
	require.NoError(t, enc.Close())

	sealed := enc.Buffer()
	sealed[len(sealed)-1] ^= 0x01

	dec, err := NewMemoryBytesWithKey(sealed, FlagReadOnly, key)
	require.NoError(t, err)
	_, err = dec.ReadAll()
	require.Error(t, err)
}

func TestCryptoWrongKeyFails(t *testing.T) {
	key := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	other := []byte{15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}

	enc, err := NewMemoryBytesWithKey(nil, FlagReadWrite, key)
	require.NoError(t, err)
	require.NoError(t, enc.Write([]byte("sensitive payload")))
	require.NoError(t, enc.Close())

	dec, err := NewMemoryBytesWithKey(enc.Buffer(), FlagReadOnly, other)
	require.NoError(t, err)
	_, err = dec.ReadAll()
	require.Error(t, err)
}

func TestCryptoRejectsBadKeySize(t *testing.T) {
	_, err := NewMemoryBytesWithKey(nil, FlagReadWrite, []byte("short"))
	require.Error(t, err)
}

func TestFileStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")

	w, err := OpenFile(path, FlagWriteOnly|FlagBuffered)
	require.NoError(t, err)
	require.NoError(t, w.Write([]byte("file payload")))
	require.NoError(t, w.Close())

	r, err := OpenFile(path, FlagReadOnly)
	require.NoError(t, err)
	assert.Equal(t, path, r.Name())
	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("file payload"), got)
	require.NoError(t, r.Close())
}

func TestFileStreamMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "absent.bin"), FlagReadOnly)
	require.Error(t, err)
	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errs.KindSystem, e.Kind)
}

func TestFileStreamEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sealed.bin")
	key := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	w, err := OpenFileWithKey(path, FlagWriteOnly, key)
	require.NoError(t, err)
	require.NoError(t, w.Write([]byte("on-disk secret")))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "on-disk secret")

	r, err := OpenFileWithKey(path, FlagReadOnly, key)
	require.NoError(t, err)
	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("on-disk secret"), got)
	require.NoError(t, r.Close())
}

func TestReflectedStreamAccess(t *testing.T) {
	m, err := NewMemoryBytes([]byte("abc"), FlagReadWrite)
	require.NoError(t, err)

	name, err := m.GetProperty("Name")
	require.NoError(t, err)
	s, _ := name.AsString()
	assert.Equal(t, "<memory>", s)

	isOpen, err := m.GetProperty("IS_OPEN")
	require.NoError(t, err)
	b, _ := isOpen.AsBool()
	assert.True(t, b)

	got, err := m.Call("Read", variant.NewUInt(2))
	require.NoError(t, err)
	data, _ := got.AsByteString()
	assert.Equal(t, []byte("ab"), data)

	_, err = m.Call("Read")
	assert.Equal(t, errs.CodeServiceDoesNotHaveNParameters, errCode(t, err))

	buf, err := m.GetProperty("Buffer")
	require.NoError(t, err)
	data, _ = buf.AsByteString()
	assert.Equal(t, []byte("abc"), data)
}
