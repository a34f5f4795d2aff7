package meta

import (
	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
)

// WriteBoolean writes a complete one-byte BOOLF/BOOLT frame. Booleans
// carry no separate payload: the value is the tag.
func WriteBoolean(s buffer.Sink, v bool) {
	if v {
		s.WriteByte(format.TagBoolTrue)

		return
	}

	s.WriteByte(format.TagBoolFalse)
}
