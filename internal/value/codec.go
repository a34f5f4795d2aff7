// Package value implements the per-type encode/decode dispatch: mapping
// host Go values to wire frames and back, including recursive container
// handling and the zero-copy decode path for STRNG/BYTES.
package value

import (
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/compaqt-go/compaqt/endian"
	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
	"github.com/compaqt-go/compaqt/internal/meta"
	"github.com/compaqt-go/compaqt/usertype"
)

var le = endian.GetLittleEndianEngine()

// EncodeValue dispatches v to the frame its kind requires and writes it
// to s. types may be nil if no user types are registered.
func EncodeValue(s buffer.Sink, v any, types *usertype.EncodeRegistry) error {
	switch vv := v.(type) {
	case nil:
		if err := s.Reserve(1); err != nil {
			return err
		}
		s.WriteByte(format.TagNontp)

		return nil

	case bool:
		if err := s.Reserve(1); err != nil {
			return err
		}
		meta.WriteBoolean(s, vv)

		return nil

	case float32:
		return encodeFloat(s, float64(vv))
	case float64:
		return encodeFloat(s, vv)

	case string:
		return encodeStrng(s, vv)
	case []byte:
		return encodeBytes(s, vv)

	case []any, *Map, map[string]any:
		return EncodeContainer(s, vv, types, false)

	default:
		if isIntegerKind(v) {
			n, ok := asInt64(v)
			if !ok {
				return errIntegerTooWide
			}

			return encodeIntgr(s, n)
		}

		return encodeUsertype(s, v, types)
	}
}

func encodeFloat(s buffer.Sink, f float64) error {
	if err := s.Reserve(9); err != nil {
		return err
	}
	s.WriteByte(format.TagFloat)
	s.Write(le.AppendUint64(nil, math.Float64bits(f)))

	return nil
}

func encodeStrng(s buffer.Sink, str string) error {
	if err := s.Reserve(len(str) + format.MaxFrame); err != nil {
		return err
	}
	if err := meta.WriteVarlen(s, format.TagStrng, len(str), false, 0); err != nil {
		return err
	}
	s.Write([]byte(str))

	return nil
}

func encodeBytes(s buffer.Sink, b []byte) error {
	if err := s.Reserve(len(b) + format.MaxFrame); err != nil {
		return err
	}
	if err := meta.WriteVarlen(s, format.TagBytes, len(b), false, 0); err != nil {
		return err
	}
	s.Write(b)

	return nil
}

func encodeIntgr(s buffer.Sink, n int64) error {
	nbytes := minIntBytes(n)
	if err := s.Reserve(nbytes + 1); err != nil {
		return err
	}
	if err := meta.WriteIntegerHead(s, nbytes); err != nil {
		return err
	}

	u := uint64(n)
	for i := range nbytes {
		s.WriteByte(byte(u >> (8 * i)))
	}

	return nil
}

func encodeUsertype(s buffer.Sink, v any, types *usertype.EncodeRegistry) error {
	if types == nil {
		return errUnsupportedType
	}

	idx, enc, ok := types.Lookup(v)
	if !ok {
		return errUnsupportedType
	}

	payload, err := enc(v)
	if err != nil {
		return joinUsertypeEncodeErr(err)
	}

	if err := s.Reserve(len(payload) + format.MaxFrame + 1); err != nil {
		return err
	}
	if err := meta.WriteUTypeHead(s, idx, len(payload)); err != nil {
		return err
	}
	s.Write(payload)

	return nil
}

// EncodeContainer writes a list or ordered/plain map as a VARLEN
// container frame and recurses over its children. streamingHeader
// forces the outer head to the fixed-width Mode-3/8 form the streaming
// engine depends on.
func EncodeContainer(s buffer.Sink, v any, types *usertype.EncodeRegistry, streamingHeader bool) error {
	switch vv := v.(type) {
	case []any:
		if err := writeContainerHead(s, format.TagArray, len(vv), streamingHeader); err != nil {
			return err
		}
		for _, item := range vv {
			if err := EncodeValue(s, item, types); err != nil {
				return err
			}
		}

		return nil

	case *Map:
		pairs := vv.Pairs()
		if err := writeContainerHead(s, format.TagDictn, len(pairs), streamingHeader); err != nil {
			return err
		}
		for _, kv := range pairs {
			if err := encodeStrng(s, kv.Key); err != nil {
				return err
			}
			if err := EncodeValue(s, kv.Value, types); err != nil {
				return err
			}
		}

		return nil

	case map[string]any:
		if err := writeContainerHead(s, format.TagDictn, len(vv), streamingHeader); err != nil {
			return err
		}
		for k, val := range vv {
			if err := encodeStrng(s, k); err != nil {
				return err
			}
			if err := EncodeValue(s, val, types); err != nil {
				return err
			}
		}

		return nil

	default:
		return errUnsupportedType
	}
}

func writeContainerHead(s buffer.Sink, tag byte, count int, streamingHeader bool) error {
	if err := s.Reserve(format.MaxFrame); err != nil {
		return err
	}
	if streamingHeader {
		return meta.WriteVarlen(s, tag, count, true, 8)
	}

	return meta.WriteVarlen(s, tag, count, false, 0)
}

// DecodeValue reads one complete frame from src and returns its Go
// value. When referenced is true, STRNG/BYTES results are StringView/
// BytesView values sharing storage with src rather than copies; handle
// is the reference buffer descriptor new views should retain (nil is
// valid and means "no shared buffer to protect", e.g. a regular
// in-memory decode of caller-owned bytes).
func DecodeValue(src buffer.Source, types *usertype.DecodeRegistry, referenced bool, handle *RefHandle) (any, error) {
	if err := src.Ensure(1); err != nil {
		return nil, err
	}
	head := src.Next(1)[0]

	kind, ok := format.KindOf(head)
	if !ok {
		return nil, errUnknownTag
	}

	switch kind {
	case format.KindBoolFalse:
		return false, nil
	case format.KindBoolTrue:
		return true, nil
	case format.KindNontp:
		return nil, nil
	case format.KindFloat:
		return decodeFloat(src)
	case format.KindIntgr:
		return decodeIntgr(src, head)
	case format.KindStrng:
		return decodeStrng(src, head, referenced, handle)
	case format.KindBytes:
		return decodeBytesKind(src, head, referenced, handle)
	case format.KindArray:
		return decodeArray(src, head, types, referenced, handle)
	case format.KindDictn:
		return decodeDictn(src, head, types, referenced, handle)
	case format.KindUtype:
		return decodeUtype(src, head, types)
	default:
		return nil, errUnknownTag
	}
}

func decodeFloat(src buffer.Source) (any, error) {
	if err := src.Ensure(8); err != nil {
		return nil, err
	}
	payload := src.Next(8)

	return math.Float64frombits(le.Uint64(payload)), nil
}

func decodeIntgr(src buffer.Source, head byte) (any, error) {
	nbytes, err := meta.ReadIntegerHead(head)
	if err != nil {
		return nil, err
	}
	if err := src.Ensure(nbytes); err != nil {
		return nil, err
	}
	payload := src.Next(nbytes)

	return decodeInt64(payload), nil
}

func decodeStrng(src buffer.Source, head byte, referenced bool, handle *RefHandle) (any, error) {
	length, err := meta.ReadVarlen(src, head)
	if err != nil {
		return nil, err
	}
	if err := src.Ensure(length); err != nil {
		return nil, err
	}
	payload := src.Next(length)

	if !utf8.Valid(payload) {
		return nil, errInvalidUTF8
	}

	if referenced {
		return NewStringView(bytesToStringNoCopy(payload), handle), nil
	}

	return string(payload), nil
}

// decodeStrngKey always copies: map keys are stored as plain Go
// strings, and a key is not worth protecting with a reference handle.
func decodeStrngKey(src buffer.Source) (string, error) {
	if err := src.Ensure(1); err != nil {
		return "", err
	}
	head := src.Next(1)[0]
	if format.Tag3(head) != format.TagStrng {
		return "", errNonStringKey
	}

	length, err := meta.ReadVarlen(src, head)
	if err != nil {
		return "", err
	}
	if err := src.Ensure(length); err != nil {
		return "", err
	}
	payload := src.Next(length)

	if !utf8.Valid(payload) {
		return "", errInvalidUTF8
	}

	return string(payload), nil
}

func decodeBytesKind(src buffer.Source, head byte, referenced bool, handle *RefHandle) (any, error) {
	length, err := meta.ReadVarlen(src, head)
	if err != nil {
		return nil, err
	}
	if err := src.Ensure(length); err != nil {
		return nil, err
	}
	payload := src.Next(length)

	if referenced {
		return NewBytesView(payload, handle), nil
	}

	return append([]byte(nil), payload...), nil
}

func decodeArray(src buffer.Source, head byte, types *usertype.DecodeRegistry, referenced bool, handle *RefHandle) (any, error) {
	length, err := meta.ReadVarlen(src, head)
	if err != nil {
		return nil, err
	}

	arr := make([]any, 0, length)
	for range length {
		v, err := DecodeValue(src, types, referenced, handle)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}

	return arr, nil
}

func decodeDictn(src buffer.Source, head byte, types *usertype.DecodeRegistry, referenced bool, handle *RefHandle) (any, error) {
	count, err := meta.ReadVarlen(src, head)
	if err != nil {
		return nil, err
	}

	m := NewMap(count)
	for range count {
		key, err := decodeStrngKey(src)
		if err != nil {
			return nil, err
		}

		v, err := DecodeValue(src, types, referenced, handle)
		if err != nil {
			return nil, err
		}
		m.Append(key, v)
	}

	return m, nil
}

func decodeUtype(src buffer.Source, head byte, types *usertype.DecodeRegistry) (any, error) {
	idx, length, err := meta.ReadUTypeHead(src, head)
	if err != nil {
		return nil, err
	}
	if err := src.Ensure(length); err != nil {
		return nil, err
	}
	payload := append([]byte(nil), src.Next(length)...)

	if types == nil {
		return nil, errUnknownUsertypeIndex
	}
	dec, ok := types.Lookup(idx)
	if !ok {
		return nil, errUnknownUsertypeIndex
	}

	v, err := dec(payload)
	if err != nil {
		return nil, joinUsertypeDecodeErr(err)
	}

	return v, nil
}

// bytesToStringNoCopy builds a string header over b's backing array
// without copying. Safe only because the caller attaches a RefHandle
// that keeps that backing array alive (and, for pool-backed buffers,
// un-reused) for as long as the returned StringView exists.
func bytesToStringNoCopy(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(&b[0], len(b))
}

func decodeInt64(payload []byte) int64 {
	var u uint64
	for i, b := range payload {
		u |= uint64(b) << (8 * i)
	}

	// Sign-extend from the narrower width the payload was stored at.
	shift := 64 - 8*len(payload)

	return int64(u<<shift) >> shift
}

func minIntBytes(n int64) int {
	u := uint64(n)
	for nbytes := 1; nbytes < 8; nbytes++ {
		shift := uint(64 - 8*nbytes)
		sign := int64(u<<shift) >> shift
		if sign == n {
			return nbytes
		}
	}

	return 8
}

func isIntegerKind(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}

		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}

		return int64(n), true
	default:
		return 0, false
	}
}

func joinUsertypeEncodeErr(err error) error {
	return &wrappedErr{sentinel: errUsertypeEncodeFailed, cause: err}
}

func joinUsertypeDecodeErr(err error) error {
	return &wrappedErr{sentinel: errUsertypeDecodeFailed, cause: err}
}

type wrappedErr struct {
	sentinel error
	cause    error
}

func (e *wrappedErr) Error() string { return e.sentinel.Error() + ": " + e.cause.Error() }
func (e *wrappedErr) Unwrap() []error { return []error{e.sentinel, e.cause} }
