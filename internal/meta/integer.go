package meta

import (
	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
)

// WriteIntegerHead writes an INTGR frame head for an integer payload
// that will be nbytes long (1..8, little-endian, two's complement).
func WriteIntegerHead(s buffer.Sink, nbytes int) error {
	if nbytes < 1 || nbytes > 8 {
		return errInvalidLength
	}

	s.WriteByte(format.TagIntgr | byte(nbytes)<<3)

	return nil
}

// ReadIntegerHead recovers the payload width from an already-read INTGR
// frame head.
func ReadIntegerHead(head byte) (int, error) {
	nbytes := int(head >> 3)
	if nbytes < 1 || nbytes > 8 {
		return 0, errInvalidLength
	}

	return nbytes, nil
}
