// Package meta implements the bit-level metadata codec: reading and
// writing the type tag and length/count that make up
// a value's frame head, independent of the payload bytes that follow.
//
// Every Write* function here assumes its caller has already reserved
// enough room in the Sink for the head plus payload (format.MaxFrame
// bytes covers the largest VARLEN or INTGR head, format.MaxFrame+1 the
// largest UTYPE head); metadata functions never
// call Reserve themselves. Every Read* function assumes the frame's
// first byte has already been consumed by the caller via Source.Next,
// and is handed that byte directly so dispatch doesn't require a
// separate peek.
package meta

import (
	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
)

// WriteVarlen writes a VARLEN frame head (tag plus length, in whichever
// mode is chosen) for one of ARRAY/DICTN/BYTES/STRNG.
//
// It picks the minimal mode for length unless force3 is set, in which
// case it always uses Mode 3 with exactly forceNumBytes length bytes —
// the streaming engine's forced-width container header.
func WriteVarlen(s buffer.Sink, tag byte, length int, force3 bool, forceNumBytes int) error {
	if force3 {
		return writeMode3(s, tag, uint64(length), forceNumBytes)
	}

	switch format.ChooseMode(length) {
	case 1:
		s.WriteByte(tag | byte(length)<<4)

		return nil
	case 2:
		first := tag | 0b01000 | byte(length&0b111)<<5
		second := byte(length >> 3)
		s.WriteByte(first)
		s.WriteByte(second)

		return nil
	default:
		numBytes := format.Mode3NumBytes(uint64(length))

		return writeMode3(s, tag, uint64(length), numBytes)
	}
}

func writeMode3(s buffer.Sink, tag byte, length uint64, numBytes int) error {
	if numBytes < 1 || numBytes > 8 {
		return errInvalidLength
	}

	first := tag | 0b11000 | byte(numBytes-1)<<5
	s.WriteByte(first)

	for i := range numBytes {
		s.WriteByte(byte(length >> (8 * i)))
	}

	return nil
}

// ReadVarlen reads the length that follows a VARLEN frame's first byte,
// head, consuming any additional mode bytes from src.
func ReadVarlen(src buffer.Source, head byte) (int, error) {
	switch format.ModeOf(head) {
	case 1:
		return int(head >> 4), nil
	case 2:
		if err := src.Ensure(1); err != nil {
			return 0, err
		}
		second := src.Next(1)[0]
		length := int(head>>5&0b111) | int(second)<<3

		return length, nil
	default: // Mode 3
		numBytes := int(head>>5&0b111) + 1
		if err := src.Ensure(numBytes); err != nil {
			return 0, err
		}
		payload := src.Next(numBytes)

		var length uint64
		for i, b := range payload {
			length |= uint64(b) << (8 * i)
		}

		return int(length), nil
	}
}
