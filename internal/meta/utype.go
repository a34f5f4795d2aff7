package meta

import (
	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
)

// MaxUtypeIndex is the highest user type index the 5-bit UTYPE head can
// carry (idx occupies bits 3-7 of the first byte).
const MaxUtypeIndex = 31

// WriteUTypeHead writes a UTYPE frame head: the registered type's index
// and the byte length of its encoded payload. The width byte that holds
// length is chosen minimally, independent of the VARLEN modes used by
// the container types.
func WriteUTypeHead(s buffer.Sink, idx int, length int) error {
	if idx < 0 || idx > MaxUtypeIndex {
		return errUtypeIndexOutOfRange
	}

	numBytes := format.Mode3NumBytes(uint64(length))

	s.WriteByte(format.TagUtype | byte(idx)<<3)
	s.WriteByte(byte(numBytes))

	for i := range numBytes {
		s.WriteByte(byte(length >> (8 * i)))
	}

	return nil
}

// ReadUTypeHead recovers the registered type index from an already-read
// UTYPE frame head byte, then reads the width byte and length bytes that
// follow to recover the payload length.
func ReadUTypeHead(src buffer.Source, head byte) (idx int, length int, err error) {
	idx = int(head >> 3)

	if err := src.Ensure(1); err != nil {
		return 0, 0, err
	}
	numBytes := int(src.Next(1)[0])

	if err := src.Ensure(numBytes); err != nil {
		return 0, 0, err
	}
	payload := src.Next(numBytes)

	var l uint64
	for i, b := range payload {
		l |= uint64(b) << (8 * i)
	}

	return idx, int(l), nil
}
