// Package pool provides pooled, growable byte buffers used by the
// encode driver's growable buffer model and by the streaming engine's
// chunk buffers, plus small typed scratch-slice pools.
package pool

import "sync"

// Default and ceiling sizes for pooled buffers. A codec buffer starts
// small (most values are far smaller than a page) and grows on demand;
// buffers larger than MaxThreshold are not returned to the pool, so one
// oversized container doesn't pin memory for the rest of the process.
const (
	DefaultSize  = 4 * 1024   // 4KiB
	MaxThreshold = 256 * 1024 // 256KiB
)

// Buffer is a growable byte slice with an amortized growth strategy,
// meant to be reused across encode calls via a Pool.
type Buffer struct {
	B []byte
}

// NewBuffer creates a Buffer with the given starting capacity.
func NewBuffer(size int) *Buffer {
	return &Buffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte { return b.B }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.B) }

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int { return cap(b.B) }

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Available returns how many more bytes can be appended before Grow
// would need to reallocate.
func (b *Buffer) Available() int { return cap(b.B) - len(b.B) }

// Grow ensures at least need more bytes can be appended without a
// further reallocation, copying the existing contents into a new
// backing array if necessary.
//
// Growth strategy:
// small buffers (at or below 4x DefaultSize) grow by a flat DefaultSize
// increment to minimize the number of reallocations for typical small
// values; larger buffers grow by 25% of their current capacity to avoid
// over-allocating for big containers.
func (b *Buffer) Grow(need int) {
	if b.Available() >= need {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < need {
		growBy = need
	}

	next := make([]byte, len(b.B), len(b.B)+growBy)
	copy(next, b.B)
	b.B = next
}

// Append grows the buffer as needed and appends data.
func (b *Buffer) Append(data []byte) {
	b.Grow(len(data))
	b.B = append(b.B, data...)
}

// AppendByte grows the buffer as needed and appends a single byte.
func (b *Buffer) AppendByte(v byte) {
	b.Grow(1)
	b.B = append(b.B, v)
}

// Pool is a sync.Pool of Buffers with an eviction ceiling so oversized
// buffers are not retained indefinitely.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultSize and are
// discarded, rather than recycled, once they grow past maxThreshold.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return NewBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a Buffer from the pool, allocating one if the pool is
// empty.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	return buf
}

// Put returns buf to the pool for reuse, unless it has grown beyond the
// pool's maxThreshold.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && buf.Cap() > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var defaultPool = NewPool(DefaultSize, MaxThreshold)

// Get retrieves a Buffer from the package-level default pool.
func Get() *Buffer { return defaultPool.Get() }

// Put returns a Buffer to the package-level default pool.
func Put(buf *Buffer) { defaultPool.Put(buf) }
