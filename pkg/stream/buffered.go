package stream

// bufferedPageSize is the fixed page used for bulk reads and writes.
const bufferedPageSize = 0x1000

// bufferedLayer batches small reads and writes into page-sized device
// operations. A direction switch syncs the page: pending writes are pushed
// down, unconsumed read bytes are returned by seeking the layer below
// back.
type bufferedLayer struct {
	next layer
	mode opType
	page []byte // pending write bytes, cap bufferedPageSize
	rbuf []byte // read bytes not yet consumed
}

func newBufferedLayer(next layer) *bufferedLayer {
	return &bufferedLayer{next: next, page: make([]byte, 0, bufferedPageSize)}
}

// syncForWrite abandons the read page, repositioning the layer below at
// the logical read position so writes land where the consumer stopped.
func (b *bufferedLayer) syncForWrite() error {
	if b.mode == opRead && len(b.rbuf) > 0 {
		pos, err := b.next.position()
		if err != nil {
			return err
		}
		if err := b.next.setPosition(pos - len(b.rbuf)); err != nil {
			return err
		}
		b.rbuf = nil
	}
	b.mode = opWrite
	return nil
}

// syncForRead pushes the pending write page down before reading.
func (b *bufferedLayer) syncForRead() error {
	if b.mode == opWrite && len(b.page) > 0 {
		if err := b.writeOut(); err != nil {
			return err
		}
	}
	b.mode = opRead
	return nil
}

func (b *bufferedLayer) writeOut() error {
	if len(b.page) == 0 {
		return nil
	}
	err := b.next.write(b.page)
	b.page = b.page[:0]
	return err
}

func (b *bufferedLayer) readAvailable(p []byte) (int, error) {
	if err := b.syncForRead(); err != nil {
		return 0, err
	}
	n := 0
	for n < len(p) {
		if len(b.rbuf) == 0 {
			page := make([]byte, bufferedPageSize)
			got, err := b.next.readAvailable(page)
			if err != nil {
				return n, err
			}
			if got == 0 {
				return n, nil
			}
			b.rbuf = page[:got]
		}
		copied := copy(p[n:], b.rbuf)
		b.rbuf = b.rbuf[copied:]
		n += copied
	}
	return n, nil
}

func (b *bufferedLayer) write(p []byte) error {
	if err := b.syncForWrite(); err != nil {
		return err
	}
	for len(p) > 0 {
		room := cap(b.page) - len(b.page)
		if room == 0 {
			if err := b.writeOut(); err != nil {
				return err
			}
			room = cap(b.page)
		}
		if room > len(p) {
			room = len(p)
		}
		b.page = append(b.page, p[:room]...)
		p = p[room:]
	}
	return nil
}

func (b *bufferedLayer) flush(soft bool) error {
	if err := b.writeOut(); err != nil {
		return err
	}
	return b.next.flush(soft)
}

func (b *bufferedLayer) position() (int, error) {
	pos, err := b.next.position()
	if err != nil {
		return 0, err
	}
	switch b.mode {
	case opRead:
		return pos - len(b.rbuf), nil
	case opWrite:
		return pos + len(b.page), nil
	}
	return pos, nil
}

func (b *bufferedLayer) setPosition(pos int) error {
	if err := b.writeOut(); err != nil {
		return err
	}
	b.rbuf = nil
	b.mode = opNone
	return b.next.setPosition(pos)
}

func (b *bufferedLayer) size() (int, error) {
	if err := b.writeOut(); err != nil {
		return 0, err
	}
	return b.next.size()
}

func (b *bufferedLayer) setSize(size int) error {
	if err := b.writeOut(); err != nil {
		return err
	}
	b.rbuf = nil
	return b.next.setSize(size)
}

func (b *bufferedLayer) close() error {
	// pending bytes were flushed by the owning stream before close
	return b.next.close()
}

func (b *bufferedLayer) setKey(key []byte) error { return b.next.setKey(key) }
