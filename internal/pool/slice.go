package pool

import "sync"

// anySlicePool and byteSlicePool back two scratch-slice shapes: container
// elements (any) and raw payload scratch (byte); no other package of the
// module calls them at present. Each is backed by its own sync.Pool of
// pointer-to-slice so the pooled backing array survives a Put/Get
// round trip without the pool boxing a new slice header each time.
var (
	anySlicePool  = sync.Pool{New: func() any { return &[]any{} }}
	byteSlicePool = sync.Pool{New: func() any { return &[]byte{} }}
)

// GetAnySlice retrieves a []any slice of length size from the pool,
// allocating a new one if the pooled slice's capacity is insufficient.
// The caller must call the returned cleanup function, typically via
// defer, to return the slice to the pool.
func GetAnySlice(size int) ([]any, func()) {
	ptr, _ := anySlicePool.Get().(*[]any)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]any, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { anySlicePool.Put(ptr) }
}

// GetByteSlice retrieves a []byte slice of length size from the pool,
// allocating a new one if the pooled slice's capacity is insufficient.
// The caller must call the returned cleanup function, typically via
// defer, to return the slice to the pool.
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { byteSlicePool.Put(ptr) }
}
