package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_GrowAndAppend(t *testing.T) {
	buf := NewBuffer(4)
	require.Equal(t, 0, buf.Len())
	require.Equal(t, 4, buf.Cap())

	buf.Append([]byte{1, 2, 3})
	require.Equal(t, 3, buf.Len())

	buf.AppendByte(4)
	require.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestBuffer_GrowReallocates(t *testing.T) {
	buf := NewBuffer(1)
	buf.Append([]byte{0xAA})

	buf.Grow(DefaultSize * 10)
	require.GreaterOrEqual(t, buf.Available(), DefaultSize*10)
	require.Equal(t, []byte{0xAA}, buf.Bytes())
}

func TestBuffer_Reset(t *testing.T) {
	buf := NewBuffer(8)
	buf.Append([]byte{1, 2, 3})
	buf.Reset()
	require.Equal(t, 0, buf.Len())
	require.GreaterOrEqual(t, buf.Cap(), 8)
}

func TestPool_GetPutRoundtrip(t *testing.T) {
	p := NewPool(16, 64)

	buf := p.Get()
	require.NotNil(t, buf)
	buf.Append([]byte("hello"))

	p.Put(buf)

	buf2 := p.Get()
	require.Equal(t, 0, buf2.Len(), "pooled buffer must come back reset")
}

func TestPool_DiscardsOversizedBuffers(t *testing.T) {
	p := NewPool(4, 8)

	buf := p.Get()
	buf.Grow(100)
	require.Greater(t, buf.Cap(), 8)

	p.Put(buf)

	// The oversized buffer should not have been retained; a fresh Get
	// either allocates new or returns something within the default size.
	buf2 := p.Get()
	require.LessOrEqual(t, buf2.Cap(), 100)
}
