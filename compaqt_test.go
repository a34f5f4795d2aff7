package compaqt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/compaqt-go/compaqt/format"
)

func TestEncode_LiteralByteScenarios(t *testing.T) {
	cases := []struct {
		v    any
		want []byte
	}{
		{true, []byte{0x0D}},
		{false, []byte{0x05}},
		{nil, []byte{0x1D}},
		{"", []byte{0x03}},
		{"a", []byte{0x13, 0x61}},
		{[]any{}, []byte{0x00}},
		{[]any{int64(1)}, []byte{0x10, 0x0C, 0x01}},
		{map[string]any{}, []byte{0x01}},
		{1.0, []byte{0x15, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F}},
	}

	for _, c := range cases {
		got, err := Encode(c.v)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestRoundTrip_Scalars(t *testing.T) {
	cases := []any{
		true, false, nil, "", "hello world",
		int64(0), int64(1), int64(-1),
		int64(-9223372036854775808), int64(9223372036854775807),
		3.14159,
	}

	for _, v := range cases {
		data, err := Encode(v)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestRoundTrip_ListsAndMapsPreserveOrder(t *testing.T) {
	m := NewMap(3)
	m.Append("z", int64(1))
	m.Append("a", int64(2))
	m.Append("m", []any{int64(1), "two", 3.0})

	data, err := Encode(m)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	gotMap, ok := got.(*Map)
	require.True(t, ok)
	require.Equal(t, m.Pairs(), gotMap.Pairs())
}

func TestIntegerBoundary_8ByteRoundTripsAnd9ByteRejected(t *testing.T) {
	for _, v := range []int64{-9223372036854775808, 9223372036854775807} {
		data, err := Encode(v)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	_, err := Encode(uint64(1) << 63)
	require.Error(t, err)
	require.True(t, IsEncodingError(err))
}

func TestLengthModeMinimality(t *testing.T) {
	for _, n := range []int{0, 1, 15} {
		data, err := Encode(string(make([]byte, n)))
		require.NoError(t, err)
		require.Equal(t, 1, format.ModeOf(data[0]), "expected Mode 1 for length %d", n)
	}

	for _, n := range []int{16, 100, 2047} {
		data, err := Encode(string(make([]byte, n)))
		require.NoError(t, err)
		require.Equal(t, 2, format.ModeOf(data[0]), "expected Mode 2 for length %d", n)
	}

	for _, n := range []int{2048, 70000} {
		data, err := Encode(string(make([]byte, n)))
		require.NoError(t, err)
		require.Equal(t, 3, format.ModeOf(data[0]), "expected Mode 3 for length %d", n)
	}
}

func TestStreamCompatible_ForcesNineByteHeader(t *testing.T) {
	data, err := Encode([]any{int64(1)}, WithStreamCompatible())
	require.NoError(t, err)
	require.Equal(t, byte(0b11111000), data[0])
	require.Equal(t, byte(1), data[1])
}

func TestValidatorAgreement(t *testing.T) {
	good, err := Encode([]any{int64(1), "two", true, nil, 3.5})
	require.NoError(t, err)

	ok, err := Validate(good)
	require.NoError(t, err)
	require.True(t, ok)

	truncated := good[:len(good)-1]
	ok, err = Validate(truncated)
	require.NoError(t, err)
	require.False(t, ok)

	_, decodeErr := Decode(truncated)
	require.Error(t, decodeErr)
}

func TestValidate_WithErrOnInvalid(t *testing.T) {
	ok, err := Validate([]byte{0b11100111}, WithErrOnInvalid())
	require.False(t, ok)
	require.True(t, IsValidationError(err))
}

func TestUsertype_RoundTrip(t *testing.T) {
	type Point struct{ X, Y int64 }

	enc := NewEncoderTypes()
	_, err := enc.Register(Point{}, func(v any) ([]byte, error) {
		p := v.(Point)
		b, encErr := Encode([]any{p.X, p.Y})
		return b, encErr
	})
	require.NoError(t, err)

	dec := NewDecoderTypes()
	require.NoError(t, dec.Register(0, func(payload []byte) (any, error) {
		v, decErr := Decode(payload)
		if decErr != nil {
			return nil, decErr
		}
		items := v.([]any)
		return Point{X: items[0].(int64), Y: items[1].(int64)}, nil
	}))

	data, err := Encode(Point{X: 3, Y: 4}, WithEncoderTypes(enc))
	require.NoError(t, err)

	got, err := Decode(data, WithDecoderTypes(dec))
	require.NoError(t, err)
	require.Equal(t, Point{X: 3, Y: 4}, got)
}

func TestReferencedDecode_ViewsOutliveDriverCall(t *testing.T) {
	data, err := Encode("hello world")
	require.NoError(t, err)

	var view StringView
	func() {
		got, decErr := Decode(data, WithReferenced())
		require.NoError(t, decErr)
		view = got.(StringView)
	}()

	require.Equal(t, "hello world", view.String())
	view.Release()
}

func TestStreamingConsistency_FileValidAfterEachWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.bin")

	enc, err := NewStreamEncoder(path, ListKind)
	require.NoError(t, err)

	require.NoError(t, enc.Write([]any{int64(1)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ok, err := Validate(data)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, []any{int64(1)}, got)

	require.NoError(t, enc.Write([]any{int64(2)}))
	require.NoError(t, enc.Close())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	ok, err = Validate(data)
	require.NoError(t, err)
	require.True(t, ok)

	dec, err := NewStreamDecoder(path)
	require.NoError(t, err)
	defer dec.Close()
	require.Equal(t, uint64(2), dec.ItemsRemaining())
}

func TestEncodeFileAndDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.bin")

	require.NoError(t, EncodeFile(path, map[string]any{"a": int64(1)}))

	got, err := DecodeFile(path)
	require.NoError(t, err)

	m, ok := got.(*Map)
	require.True(t, ok)
	v, found := m.Get("a")
	require.True(t, found)
	require.Equal(t, int64(1), v)
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.bin")
	require.NoError(t, EncodeFile(path, []any{int64(1), int64(2)}))

	ok, err := ValidateFile(path)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestManualAndDynamicAllocations(t *testing.T) {
	require.NoError(t, ManualAllocations(32, 256))
	defer func() { require.NoError(t, DynamicAllocations()) }()

	require.Error(t, ManualAllocations(0, 10))
}
