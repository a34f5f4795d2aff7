package value

import "sync/atomic"

// Owner is released once the last view over a decode buffer drops. It
// is nil when the backing storage is an ordinary Go byte slice or
// string: Go's garbage collector already keeps such backing arrays
// alive for as long as any slice or string header points into them, so
// there is nothing for a view to explicitly decref. Owner exists for
// the cases the GC doesn't cover: a pool-backed buffer that would
// otherwise be returned (and reused) out from under a live view.
type Owner interface {
	Release()
}

// RefHandle is the reference buffer descriptor: a shared-ownership
// handle that StringView and BytesView hold onto so the buffer they
// were sliced from outlives them. Retain/Release are safe for
// concurrent use; views themselves are not (matching the single-
// threaded, synchronous model decode otherwise assumes).
type RefHandle struct {
	refcount int32
	owner    Owner
}

// NewRefHandle creates a handle with one outstanding reference. owner
// may be nil for GC-backed storage, in which case Release is a no-op.
func NewRefHandle(owner Owner) *RefHandle {
	return &RefHandle{refcount: 1, owner: owner}
}

// Retain adds one reference, returning h for chaining into a view.
func (h *RefHandle) Retain() *RefHandle {
	atomic.AddInt32(&h.refcount, 1)

	return h
}

// Release drops one reference. When the count reaches zero and an
// owner is set, the owner is released.
func (h *RefHandle) Release() {
	if atomic.AddInt32(&h.refcount, -1) == 0 && h.owner != nil {
		h.owner.Release()
	}
}

// StringView is a zero-copy decode result for STRNG: the string shares
// storage with the decode buffer rather than being copied.
type StringView struct {
	s      string
	handle *RefHandle
}

// NewStringView wraps s, retaining one reference on handle. handle may
// be nil when the caller has no pool-backed buffer to protect.
func NewStringView(s string, handle *RefHandle) StringView {
	if handle != nil {
		handle.Retain()
	}

	return StringView{s: s, handle: handle}
}

// String returns the viewed string. It remains valid until Release is called.
func (v StringView) String() string { return v.s }

// Release drops this view's reference to its backing buffer.
func (v StringView) Release() {
	if v.handle != nil {
		v.handle.Release()
	}
}

// BytesView is a zero-copy decode result for BYTES.
type BytesView struct {
	b      []byte
	handle *RefHandle
}

// NewBytesView wraps b, retaining one reference on handle.
func NewBytesView(b []byte, handle *RefHandle) BytesView {
	if handle != nil {
		handle.Retain()
	}

	return BytesView{b: b, handle: handle}
}

// Bytes returns the viewed slice. It remains valid until Release is called.
func (v BytesView) Bytes() []byte { return v.b }

// Release drops this view's reference to its backing buffer.
func (v BytesView) Release() {
	if v.handle != nil {
		v.handle.Release()
	}
}
