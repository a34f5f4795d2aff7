package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/compaqt-go/compaqt/internal/buffer"
	"github.com/compaqt-go/compaqt/internal/value"
)

func encode(t *testing.T, v any) []byte {
	t.Helper()

	s := buffer.NewEncodeSink(32)
	defer s.Release()

	require.NoError(t, value.EncodeValue(s, v, nil))

	return append([]byte(nil), s.Bytes()...)
}

func TestBytes_AcceptsWellFormedScalars(t *testing.T) {
	cases := []any{true, false, nil, "", "hello", int64(1), int64(-1), 3.14, []byte("bytes")}

	for _, v := range cases {
		ok, err := Bytes(encode(t, v))
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestBytes_AcceptsNestedContainers(t *testing.T) {
	m := value.NewMap(2)
	m.Append("a", int64(1))
	m.Append("b", []any{int64(1), int64(2), "three"})

	ok, err := Bytes(encode(t, m))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBytes_RejectsTruncatedFrame(t *testing.T) {
	data := encode(t, "hello")
	ok, err := Bytes(data[:len(data)-1])
	require.Error(t, err)
	require.False(t, ok)
}

func TestBytes_RejectsUnknownTag(t *testing.T) {
	ok, err := Bytes([]byte{0b11100111}) // tag3 == 0b111, reserved
	require.True(t, IsUnknownTag(err))
	require.False(t, ok)
}

func TestBytes_RejectsTrailingData(t *testing.T) {
	data := append(encode(t, int64(1)), encode(t, int64(2))...)
	ok, err := Bytes(data)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBytes_RejectsTruncatedContainerChild(t *testing.T) {
	data := encode(t, []any{int64(1), "two"})
	ok, err := Bytes(data[:len(data)-1])
	require.Error(t, err)
	require.False(t, ok)
}

func TestFile_AcceptsWellFormedFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.bin")
	data := encode(t, []any{int64(1), int64(2), "three"})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)

	ok, err := File(f, 0, 8, info.Size())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFile_RejectsPastEndOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.bin")
	data := encode(t, []any{int64(1), int64(2)})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	// claim the container ends one byte earlier than it actually does
	ok, err := File(f, 0, 8, int64(len(data)-1))
	require.Error(t, err)
	require.False(t, ok)
}
