package buffer

import "io"

// Source is the decode-side overread hook contract: Ensure must
// guarantee at least n bytes are readable at the
// current position before Next is called for that many bytes.
type Source interface {
	// Ensure guarantees n bytes are available to read from the current
	// position, refilling from backing storage if necessary.
	Ensure(n int) error
	// Next returns the next n bytes and advances the read position by
	// n. Ensure(n) must have succeeded immediately before the call.
	Next(n int) []byte
	// Pos returns the absolute position (from the start of the logical
	// stream) of the next unread byte.
	Pos() int64
}

// MemSource is an in-memory Source over a byte slice already fully
// resident in memory: the regular decode driver's bytes input, or a
// whole file read into memory by the regular decode driver's file
// input.
type MemSource struct {
	data   []byte
	offset int
}

// NewMemSource wraps data for sequential reading.
func NewMemSource(data []byte) *MemSource {
	return &MemSource{data: data}
}

func (s *MemSource) Ensure(n int) error {
	if s.offset+n > len(s.data) {
		return errOverread
	}

	return nil
}

func (s *MemSource) Next(n int) []byte {
	b := s.data[s.offset : s.offset+n]
	s.offset += n

	return b
}

func (s *MemSource) Pos() int64 { return int64(s.offset) }

// Remaining returns the number of unread bytes.
func (s *MemSource) Remaining() int { return len(s.data) - s.offset }

// Len returns the total size of the wrapped data.
func (s *MemSource) Len() int { return len(s.data) }

// ChunkSource is a chunked, file-backed Source used by the streaming
// decoder and the file form of the validator. It keeps a bounded
// in-memory window (the chunk buffer) over a logically much larger
// byte stream on disk, refilling from the file whenever a read would
// reach past the window's end.
type ChunkSource struct {
	r         io.ReaderAt
	buf       []byte // the current chunk window
	winStart  int64  // absolute file offset of buf[0]
	pos       int64  // absolute position of the next unread byte
	chunkSize int
	end       int64 // absolute end-of-data offset, or -1 if unknown
}

// NewChunkSource creates a ChunkSource reading from r starting at
// fileOffset, refilling chunkSize bytes at a time. end is the absolute
// offset one past the last valid byte, or -1 if the caller doesn't know
// the stream's extent (e.g. reading until io.EOF).
func NewChunkSource(r io.ReaderAt, fileOffset int64, chunkSize int, end int64) *ChunkSource {
	return &ChunkSource{
		r:         r,
		winStart:  fileOffset,
		pos:       fileOffset,
		chunkSize: chunkSize,
		end:       end,
	}
}

func (s *ChunkSource) winEnd() int64 { return s.winStart + int64(len(s.buf)) }

func (s *ChunkSource) Ensure(n int) error {
	if s.pos+int64(n) <= s.winEnd() {
		return nil
	}
	if n > s.chunkSize {
		return errValueLargerThanChunk
	}
	if s.end >= 0 && s.pos+int64(n) > s.end {
		return errOverread
	}

	want := s.chunkSize
	if s.end >= 0 {
		remaining := s.end - s.pos
		if remaining < int64(want) {
			want = int(remaining)
		}
	}
	if want < n {
		want = n
	}

	buf := make([]byte, want)
	read, err := s.r.ReadAt(buf, s.pos)
	if err != nil && err != io.EOF {
		return err
	}
	if read < n {
		return errOverread
	}

	s.buf = buf[:read]
	s.winStart = s.pos

	return nil
}

func (s *ChunkSource) Next(n int) []byte {
	start := int(s.pos - s.winStart)
	b := s.buf[start : start+n]
	s.pos += int64(n)

	return b
}

func (s *ChunkSource) Pos() int64 { return s.pos }
