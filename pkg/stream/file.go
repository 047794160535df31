package stream

import (
	"io"
	"os"

	"github.com/metercore/mcore/internal/mmfile"
	"github.com/metercore/mcore/pkg/errs"
)

// mappedDevice serves a read-only file through a memory mapping.
type mappedDevice struct {
	name    string
	data    []byte
	pos     int
	cleanup func() error
	open    bool
}

func (d *mappedDevice) Name() string { return d.name }

func (d *mappedDevice) ReadAvailable(p []byte) (int, error) {
	if d.pos >= len(d.data) {
		return 0, nil
	}
	n := copy(p, d.data[d.pos:])
	d.pos += n
	return n, nil
}

func (d *mappedDevice) Write([]byte) error {
	return errs.CannotWriteToReadonlyStream()
}

func (d *mappedDevice) Position() (int, error) { return d.pos, nil }

func (d *mappedDevice) SetPosition(pos int) error {
	if pos < 0 || pos > len(d.data) {
		return errs.EndOfStream("end of stream %s", errs.Quote(d.name))
	}
	d.pos = pos
	return nil
}

func (d *mappedDevice) Size() (int, error) { return len(d.data), nil }

func (d *mappedDevice) SetSize(int) error {
	return errs.CannotWriteToReadonlyStream()
}

func (d *mappedDevice) Close() error {
	if !d.open {
		return nil
	}
	d.open = false
	d.data = nil
	return d.cleanup()
}

func (d *mappedDevice) IsOpen() bool { return d.open }

// osFileDevice serves a writable file through the OS file descriptor.
type osFileDevice struct {
	name string
	f    *os.File
	open bool
}

func (d *osFileDevice) Name() string { return d.name }

func (d *osFileDevice) ReadAvailable(p []byte) (int, error) {
	n, err := d.f.Read(p)
	if err == io.EOF {
		return n, nil
	}
	if err != nil {
		return n, errs.System("cannot read %s: %v", errs.Quote(d.name), err)
	}
	return n, nil
}

func (d *osFileDevice) Write(p []byte) error {
	if _, err := d.f.Write(p); err != nil {
		return errs.System("cannot write %s: %v", errs.Quote(d.name), err)
	}
	return nil
}

func (d *osFileDevice) Position() (int, error) {
	pos, err := d.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errs.System("cannot position %s: %v", errs.Quote(d.name), err)
	}
	return int(pos), nil
}

func (d *osFileDevice) SetPosition(pos int) error {
	if _, err := d.f.Seek(int64(pos), io.SeekStart); err != nil {
		return errs.System("cannot position %s: %v", errs.Quote(d.name), err)
	}
	return nil
}

func (d *osFileDevice) Size() (int, error) {
	info, err := d.f.Stat()
	if err != nil {
		return 0, errs.System("cannot stat %s: %v", errs.Quote(d.name), err)
	}
	return int(info.Size()), nil
}

func (d *osFileDevice) SetSize(size int) error {
	if err := d.f.Truncate(int64(size)); err != nil {
		return errs.System("cannot truncate %s: %v", errs.Quote(d.name), err)
	}
	return nil
}

// Sync pushes written bytes to durable storage.
func (d *osFileDevice) Sync() error {
	if err := fdatasync(d.f); err != nil {
		return errs.System("cannot sync %s: %v", errs.Quote(d.name), err)
	}
	return nil
}

func (d *osFileDevice) Close() error {
	if !d.open {
		return nil
	}
	d.open = false
	if err := d.f.Close(); err != nil {
		return errs.System("cannot close %s: %v", errs.Quote(d.name), err)
	}
	return nil
}

func (d *osFileDevice) IsOpen() bool { return d.open }

// File is a file-backed stream. A stream opened read-only is served
// through a memory mapping for fast random access; any writable mode goes
// through the OS file descriptor.
type File struct {
	Stream
}

// OpenFile opens the file at path with the given flags, creating it when
// opened for writing.
func OpenFile(path string, flags Flags) (*File, error) {
	return OpenFileWithKey(path, flags, nil)
}

// OpenFileWithKey opens an encrypted file stream; key must be a valid
// AES-EAX key.
func OpenFileWithKey(path string, flags Flags, key []byte) (*File, error) {
	if flags&FlagReadWrite == 0 {
		flags |= FlagReadOnly
	}
	f := &File{}
	var dev Device
	if flags&FlagWriteOnly == 0 {
		data, cleanup, err := mmfile.Map(path)
		if err != nil {
			return nil, errs.System("cannot open %s: %v", errs.Quote(path), err)
		}
		dev = &mappedDevice{name: path, data: data, cleanup: cleanup, open: true}
	} else {
		mode := os.O_CREATE | os.O_RDWR
		if flags&FlagReadOnly == 0 {
			mode = os.O_CREATE | os.O_WRONLY
		}
		osf, err := os.OpenFile(path, mode, 0o644)
		if err != nil {
			return nil, errs.System("cannot open %s: %v", errs.Quote(path), err)
		}
		dev = &osFileDevice{name: path, f: osf, open: true}
	}
	if err := f.initStream(dev, flags, key, fileClass, f); err != nil {
		dev.Close()
		return nil, err
	}
	return f, nil
}
