package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAnySlice(t *testing.T) {
	s, cleanup := GetAnySlice(5)
	defer cleanup()

	require.Len(t, s, 5)
	for _, v := range s {
		require.Nil(t, v)
	}
}

func TestGetByteSlice(t *testing.T) {
	s, cleanup := GetByteSlice(10)
	defer cleanup()

	require.Len(t, s, 10)
}

func TestGetAnySlice_ReusesCapacity(t *testing.T) {
	s, cleanup := GetAnySlice(3)
	s[0] = "x"
	cleanup()

	s2, cleanup2 := GetAnySlice(2)
	defer cleanup2()
	require.Len(t, s2, 2)
}
