package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChooseMode(t *testing.T) {
	require.Equal(t, 1, ChooseMode(0))
	require.Equal(t, 1, ChooseMode(15))
	require.Equal(t, 2, ChooseMode(16))
	require.Equal(t, 2, ChooseMode(2047))
	require.Equal(t, 3, ChooseMode(2048))
	require.Equal(t, 3, ChooseMode(1<<20))
}

func TestModeOfAcceptsBothMode1Forms(t *testing.T) {
	require.Equal(t, 1, ModeOf(0b00000000))
	require.Equal(t, 1, ModeOf(0b00010000))
	require.Equal(t, 2, ModeOf(0b00001000))
	require.Equal(t, 3, ModeOf(0b00011000))
}

func TestMode3NumBytes(t *testing.T) {
	require.Equal(t, 1, Mode3NumBytes(0))
	require.Equal(t, 1, Mode3NumBytes(255))
	require.Equal(t, 2, Mode3NumBytes(256))
	require.Equal(t, 2, Mode3NumBytes(65535))
	require.Equal(t, 3, Mode3NumBytes(65536))
	require.Equal(t, 8, Mode3NumBytes(1<<63))
}

func TestStreamHeaderSize(t *testing.T) {
	require.Equal(t, 9, StreamHeaderSize())
}

func TestStreamHeaderByte(t *testing.T) {
	require.Equal(t, byte(0b11111000), StreamHeaderByte(TagArray))
	require.Equal(t, byte(0b11111001), StreamHeaderByte(TagDictn))
	require.True(t, IsStreamHeader(StreamHeaderByte(TagArray)))
	require.False(t, IsStreamHeader(0x10))
}
