// Package buffer implements the two concrete buffer models the codec
// needs: a growable in-memory sink for regular encoding, and a
// chunked file-backed sink/source pair for the streaming engine and the
// file form of the validator. Both sink implementations satisfy the
// same Sink interface, and both source implementations satisfy the same
// Source interface, so the metadata and value codecs are written once
// against the interfaces and don't know which concrete buffer is
// driving them.
package buffer

import (
	"io"

	"github.com/compaqt-go/compaqt/internal/pool"
)

// Sink is the encode-side capacity hook contract:
// Reserve must guarantee at least need further writable bytes before
// Write is called.
type Sink interface {
	// Reserve guarantees room for at least need more bytes.
	Reserve(need int) error
	// Write appends p. Reserve must already cover len(p).
	Write(p []byte)
	// WriteByte appends a single byte. Reserve must already cover it.
	WriteByte(b byte)
}

// EncodeSink is the growable, in-memory Sink used by the regular
// encode driver. Reserve reallocates (via the pooled buffer's amortized
// growth strategy) whenever the current capacity would be exceeded.
type EncodeSink struct {
	buf          *pool.Buffer
	reallocCount int
}

// NewEncodeSink creates an EncodeSink with the given starting capacity.
func NewEncodeSink(initialCap int) *EncodeSink {
	return &EncodeSink{buf: pool.NewBuffer(initialCap)}
}

func (s *EncodeSink) Reserve(need int) error {
	if s.buf.Available() < need {
		s.buf.Grow(need)
		s.reallocCount++
	}

	return nil
}

func (s *EncodeSink) Write(p []byte) { s.buf.B = append(s.buf.B, p...) }
func (s *EncodeSink) WriteByte(b byte) { s.buf.B = append(s.buf.B, b) }

// Bytes returns the encoded bytes written so far.
func (s *EncodeSink) Bytes() []byte { return s.buf.Bytes() }

// Len returns the number of bytes written so far.
func (s *EncodeSink) Len() int { return s.buf.Len() }

// Cap returns the sink's current backing capacity.
func (s *EncodeSink) Cap() int { return s.buf.Cap() }

// Reallocated reports whether Reserve has ever had to grow the backing
// array, the signal the allocation governor uses to decide which way to
// adjust its running estimate.
func (s *EncodeSink) Reallocated() bool { return s.reallocCount > 0 }

// Release returns the sink's backing buffer to the shared pool. Callers
// must not use the sink, or any slice returned by Bytes, after Release.
func (s *EncodeSink) Release() { pool.Put(s.buf) }

// ChunkSink is the chunked, file-backed Sink used by the streaming
// encoder. Reserve flushes the chunk buffer to the underlying writer
// whenever the requested size would not fit in what remains of the
// current chunk; it fails outright if a single value cannot ever fit in
// one chunk, per the streaming engine's chunk-size contract.
type ChunkSink struct {
	w         io.Writer
	buf       *pool.Buffer
	chunkSize int
	flushed   int64 // total bytes handed to w across all flushes
}

// NewChunkSink creates a ChunkSink that flushes full chunks to w.
func NewChunkSink(w io.Writer, chunkSize int) *ChunkSink {
	return &ChunkSink{
		w:         w,
		buf:       pool.NewBuffer(chunkSize),
		chunkSize: chunkSize,
	}
}

func (s *ChunkSink) Reserve(need int) error {
	if s.buf.Available() >= need {
		return nil
	}
	if need > s.chunkSize {
		return errValueLargerThanChunk
	}

	if err := s.Flush(); err != nil {
		return err
	}

	return nil
}

func (s *ChunkSink) Write(p []byte)    { s.buf.B = append(s.buf.B, p...) }
func (s *ChunkSink) WriteByte(b byte)  { s.buf.B = append(s.buf.B, b) }

// Flush writes any buffered bytes to the underlying writer and resets
// the chunk buffer.
func (s *ChunkSink) Flush() error {
	if s.buf.Len() == 0 {
		return nil
	}

	n, err := s.w.Write(s.buf.Bytes())
	s.flushed += int64(n)
	if err != nil {
		return err
	}

	s.buf.Reset()

	return nil
}

// Flushed returns the total number of bytes handed to the underlying
// writer across the sink's lifetime, including the current unflushed
// chunk buffer's contents once Flush is called.
func (s *ChunkSink) Flushed() int64 { return s.flushed }

// Release returns the chunk buffer to the shared pool.
func (s *ChunkSink) Release() { pool.Put(s.buf) }
