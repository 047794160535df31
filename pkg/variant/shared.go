package variant

import "sync/atomic"

// Object is the interface a reflected object must satisfy to be carried
// inside a Variant of kind Object or ObjectEmbedded. ClassName feeds the
// class registry lookup; EmbeddedSize, when nonzero, switches storage to
// ObjectEmbedded (copied by value) instead of Object (borrowed
// reference).
type Object interface {
	ClassName() string
	// EmbeddedSize returns the object's declared embedded payload size in
	// bytes, or 0 if the object is never embedded (borrowed-reference only).
	EmbeddedSize() int
}

// Embeddable is implemented by objects that support the value-copy
// semantics ObjectEmbedded storage requires: small objects copied by
// value into a shared heap buffer.
type Embeddable interface {
	Object
	CloneEmbedded() Object
}

// sharedBuffer is the copy-on-write heap payload backing String,
// ByteString (when >= 8 bytes), StringCollection, VariantCollection, Map,
// and ObjectEmbedded. refs is retained for introspection/IsShared() only;
// mutation never trusts it for correctness: every
// mutating Variant method clones the buffer it is about to change, so two
// Variants that alias the same *sharedBuffer can never observe each
// other's writes regardless of what refs reads.
type sharedBuffer struct {
	refs  int32
	bytes []byte
	items []Variant // VariantCollection / Map (interleaved k,v) elements
	obj   Object    // ObjectEmbedded payload
}

func newBytesBuffer(b []byte) *sharedBuffer {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &sharedBuffer{refs: 1, bytes: cp}
}

func newItemsBuffer(items []Variant) *sharedBuffer {
	cp := make([]Variant, len(items))
	copy(cp, items)
	return &sharedBuffer{refs: 1, items: cp}
}

func newObjectBuffer(obj Object) *sharedBuffer {
	return &sharedBuffer{refs: 1, obj: obj}
}

func (s *sharedBuffer) retain() *sharedBuffer {
	if s != nil {
		atomic.AddInt32(&s.refs, 1)
	}
	return s
}

// cloneBytes returns a fresh buffer with the same byte content, for use
// just before an in-place byte mutation.
func (s *sharedBuffer) cloneBytes() *sharedBuffer {
	if s == nil {
		return newBytesBuffer(nil)
	}
	return newBytesBuffer(s.bytes)
}

// cloneItems returns a fresh buffer with the same element content. Each
// contained Variant is copied by value (its own shared pointer, if any,
// comes along unmodified) so sibling collections keep sharing nested
// heap buffers: Go's GC keeps an aliased nested buffer alive for as
// long as any copy references it, so deep sharing survives the detach
// without a manual refcount increment.
func (s *sharedBuffer) cloneItems() *sharedBuffer {
	if s == nil {
		return newItemsBuffer(nil)
	}
	return newItemsBuffer(s.items)
}
