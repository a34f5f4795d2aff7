package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
	"github.com/compaqt-go/compaqt/usertype"
)

func encode(t *testing.T, v any) []byte {
	t.Helper()

	s := buffer.NewEncodeSink(32)
	defer s.Release()

	require.NoError(t, EncodeValue(s, v, nil))

	return append([]byte(nil), s.Bytes()...)
}

func decode(t *testing.T, data []byte) any {
	t.Helper()

	src := buffer.NewMemSource(data)
	v, err := DecodeValue(src, nil, false, nil)
	require.NoError(t, err)

	return v
}

func TestScalarLiteralScenarios(t *testing.T) {
	require.Equal(t, []byte{0x0D}, encode(t, true))
	require.Equal(t, []byte{0x05}, encode(t, false))
	require.Equal(t, []byte{0x1D}, encode(t, nil))
	require.Equal(t, []byte{0x03}, encode(t, ""))
	require.Equal(t, []byte{0x13, 0x61}, encode(t, "a"))
	require.Equal(t, []byte{0x00}, encode(t, []any{}))
	require.Equal(t, []byte{0x10, 0x0C, 0x01}, encode(t, []any{1}))
	require.Equal(t, []byte{0x01}, encode(t, map[string]any{}))
	require.Equal(t,
		[]byte{0x15, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F},
		encode(t, 1.0),
	)
}

func TestRoundTrip_Scalars(t *testing.T) {
	cases := []any{
		true, false, nil, "", "hello world", int64(0), int64(1), int64(-1),
		int64(-9223372036854775808), int64(9223372036854775807), 3.14159, float64(0),
	}

	for _, v := range cases {
		got := decode(t, encode(t, v))
		require.Equal(t, v, got)
	}
}

func TestRoundTrip_IntWidths(t *testing.T) {
	require.Equal(t, int64(1), decode(t, encode(t, 1)))
	require.Equal(t, int64(200), decode(t, encode(t, uint8(200))))
	require.Equal(t, int64(-1), decode(t, encode(t, int8(-1))))
	require.Equal(t, int64(70000), decode(t, encode(t, int32(70000))))
}

func TestEncodeIntgr_RejectsOverflowingUint64(t *testing.T) {
	s := buffer.NewEncodeSink(8)
	defer s.Release()

	err := EncodeValue(s, uint64(1)<<63, nil)
	require.True(t, IsIntegerTooWide(err))
}

func TestRoundTrip_Array(t *testing.T) {
	v := []any{int64(1), "two", 3.0, nil, true}
	got := decode(t, encode(t, v))
	require.Equal(t, v, got)
}

func TestRoundTrip_NestedArray(t *testing.T) {
	v := []any{[]any{int64(1), int64(2)}, []any{}}
	got := decode(t, encode(t, v))
	require.Equal(t, v, got)
}

func TestRoundTrip_Map(t *testing.T) {
	m := NewMap(2)
	m.Append("a", int64(1))
	m.Append("b", "two")

	got := decode(t, encode(t, m))

	gotMap, ok := got.(*Map)
	require.True(t, ok)
	require.Equal(t, 2, gotMap.Len())
	require.Equal(t, KV{Key: "a", Value: int64(1)}, gotMap.At(0))
	require.Equal(t, KV{Key: "b", Value: "two"}, gotMap.At(1))
}

func TestRoundTrip_Bytes(t *testing.T) {
	v := []byte{0x01, 0x02, 0x03}
	got := decode(t, encode(t, v))
	require.Equal(t, v, got)
}

func TestDecode_ReferencedStringIsView(t *testing.T) {
	data := encode(t, "hello")

	src := buffer.NewMemSource(data)
	handle := NewRefHandle(nil)
	v, err := DecodeValue(src, nil, true, handle)
	require.NoError(t, err)

	sv, ok := v.(StringView)
	require.True(t, ok)
	require.Equal(t, "hello", sv.String())
}

func TestDecode_ReferencedBytesIsView(t *testing.T) {
	data := encode(t, []byte{9, 8, 7})

	src := buffer.NewMemSource(data)
	handle := NewRefHandle(nil)
	v, err := DecodeValue(src, nil, true, handle)
	require.NoError(t, err)

	bv, ok := v.(BytesView)
	require.True(t, ok)
	require.Equal(t, []byte{9, 8, 7}, bv.Bytes())
}

func TestDecode_RejectsInvalidUTF8(t *testing.T) {
	s := buffer.NewEncodeSink(8)
	defer s.Release()
	require.NoError(t, EncodeValue(s, []byte{0xff, 0xfe}, nil))

	// Re-tag the BYTES frame as STRNG to synthesize invalid UTF-8 input.
	out := append([]byte(nil), s.Bytes()...)
	out[0] = out[0]&^0b111 | format.TagStrng

	_, err := DecodeValue(buffer.NewMemSource(out), nil, false, nil)
	require.True(t, IsInvalidUTF8(err))
}

func TestDecode_RejectsUnknownTag(t *testing.T) {
	_, err := DecodeValue(buffer.NewMemSource([]byte{format.TagReserved}), nil, false, nil)
	require.True(t, IsUnknownTag(err))
}

func TestUsertype_RoundTrip(t *testing.T) {
	type point struct{ X, Y int }

	enc := usertype.NewEncodeRegistry()
	idx, err := enc.Register(point{}, func(v any) ([]byte, error) {
		p := v.(point)

		return []byte{byte(p.X), byte(p.Y)}, nil
	})
	require.NoError(t, err)

	dec := usertype.NewDecodeRegistry()
	require.NoError(t, dec.Register(idx, func(payload []byte) (any, error) {
		return point{X: int(payload[0]), Y: int(payload[1])}, nil
	}))

	s := buffer.NewEncodeSink(8)
	defer s.Release()
	require.NoError(t, EncodeValue(s, point{X: 3, Y: 4}, enc))

	v, err := DecodeValue(buffer.NewMemSource(s.Bytes()), dec, false, nil)
	require.NoError(t, err)
	require.Equal(t, point{X: 3, Y: 4}, v)
}

func TestEncodeValue_UnsupportedTypeWithoutRegistry(t *testing.T) {
	s := buffer.NewEncodeSink(8)
	defer s.Release()

	err := EncodeValue(s, struct{ A int }{1}, nil)
	require.True(t, IsUnsupportedType(err))
}

func TestEncodeContainer_StreamingHeaderForcesNineBytes(t *testing.T) {
	s := buffer.NewEncodeSink(32)
	defer s.Release()

	require.NoError(t, EncodeContainer(s, []any{int64(1)}, nil, true))

	out := s.Bytes()
	require.Equal(t, byte(0b11111000), out[0]) // ARRAY tag | Mode-3/8 mask
	require.Equal(t, 3, format.ModeOf(out[0]))
	require.Len(t, out[:9], 9)
}
