package meta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
)

func TestWriteBoolean(t *testing.T) {
	s := buffer.NewEncodeSink(4)
	defer s.Release()

	require.NoError(t, s.Reserve(1))
	WriteBoolean(s, true)
	require.NoError(t, s.Reserve(1))
	WriteBoolean(s, false)

	out := s.Bytes()
	kindTrue, ok := format.KindOf(out[0])
	require.True(t, ok)
	require.Equal(t, format.KindBoolTrue, kindTrue)

	kindFalse, ok := format.KindOf(out[1])
	require.True(t, ok)
	require.Equal(t, format.KindBoolFalse, kindFalse)
}
