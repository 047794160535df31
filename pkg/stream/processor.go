package stream

import "github.com/metercore/mcore/pkg/errs"

// layer is one element of a stream's processor chain. The outermost layer
// receives the API call and each delegates downward; the terminal layer
// adapts the Device.
type layer interface {
	readAvailable(p []byte) (int, error)
	write(p []byte) error
	// flush pushes pending bytes down. soft is true only for the final
	// flush before close; a layer whose framing cannot emit a partial
	// unit mid-stream releases it only then.
	flush(soft bool) error
	position() (int, error)
	setPosition(pos int) error
	size() (int, error)
	setSize(size int) error
	close() error
	setKey(key []byte) error
}

// deviceLayer terminates the chain at the raw device.
type deviceLayer struct {
	dev Device
}

// syncer is implemented by devices that can push written bytes to
// durable storage; a hard flush reaches it, the terminal soft flush
// (already followed by close) does not.
type syncer interface {
	Sync() error
}

func (d *deviceLayer) readAvailable(p []byte) (int, error) { return d.dev.ReadAvailable(p) }
func (d *deviceLayer) write(p []byte) error                { return d.dev.Write(p) }

func (d *deviceLayer) flush(soft bool) error {
	if soft {
		return nil
	}
	if s, ok := d.dev.(syncer); ok {
		return s.Sync()
	}
	return nil
}
func (d *deviceLayer) position() (int, error)              { return d.dev.Position() }
func (d *deviceLayer) setPosition(pos int) error           { return d.dev.SetPosition(pos) }
func (d *deviceLayer) size() (int, error)                  { return d.dev.Size() }
func (d *deviceLayer) setSize(size int) error              { return d.dev.SetSize(size) }
func (d *deviceLayer) close() error                        { return d.dev.Close() }
func (d *deviceLayer) setKey([]byte) error                 { return nil }

func errOperationNotSupported(what string) error {
	return errs.UnsupportedType("cannot %s for this stream type", what)
}
