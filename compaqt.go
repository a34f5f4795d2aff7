// Package compaqt implements a compact, self-describing binary
// serialization format for a fixed palette of dynamic values (strings,
// byte strings, 64-bit signed integers, IEEE-754 doubles, booleans,
// null, ordered lists, and key/value maps) plus a user-extensible type
// slot, an encoder/decoder pair, a file-backed streaming engine for
// collections larger than memory, and a structural validator.
package compaqt

import (
	"fmt"
	"os"

	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
	"github.com/compaqt-go/compaqt/internal/governor"
	"github.com/compaqt-go/compaqt/internal/meta"
	"github.com/compaqt-go/compaqt/internal/options"
	"github.com/compaqt-go/compaqt/internal/value"
	"github.com/compaqt-go/compaqt/stream"
	"github.com/compaqt-go/compaqt/usertype"
	"github.com/compaqt-go/compaqt/validate"
)

// Map is an ordered string-keyed map, the decode result for DICTN
// frames and an accepted Encode input alongside plain map[string]any.
type Map = value.Map

// KV is one key/value pair of a Map.
type KV = value.KV

// NewMap creates an empty ordered map with room for n pairs.
func NewMap(n int) *Map { return value.NewMap(n) }

// StringView and BytesView are the zero-copy decode results Decode
// returns for STRNG/BYTES frames when called with WithReferenced; both
// share storage with the decoded input and must not outlive it.
type (
	StringView = value.StringView
	BytesView  = value.BytesView
)

// ContainerKind distinguishes the two container wire types a
// StreamEncoder/StreamDecoder session can hold.
type ContainerKind = format.Kind

// The two values ContainerKind can hold.
const (
	ListKind ContainerKind = format.KindArray
	MapKind  ContainerKind = format.KindDictn
)

// EncoderTypes and DecoderTypes register user-extensible types: up to
// 32 host Go types, each mapped to a wire index 0..31 and a pair of
// encode/decode functions over an opaque byte payload.
type (
	EncoderTypes = usertype.EncodeRegistry
	DecoderTypes = usertype.DecodeRegistry
)

// NewEncoderTypes creates an empty encode-side usertype registry.
func NewEncoderTypes() *EncoderTypes { return usertype.NewEncodeRegistry() }

// NewDecoderTypes creates an empty decode-side usertype registry.
func NewDecoderTypes() *DecoderTypes { return usertype.NewDecodeRegistry() }

// StreamEncoder and StreamDecoder are open streaming sessions over one
// top-level container in a file, allowing collections larger than
// memory to be appended to and iterated in chunks.
type (
	StreamEncoder = stream.Encoder
	StreamDecoder = stream.Decoder
)

// StreamEncoderOption and StreamDecoderOption configure NewStreamEncoder
// and NewStreamDecoder respectively.
type (
	StreamEncoderOption = stream.EncoderOption
	StreamDecoderOption = stream.DecoderOption
)

// NewStreamEncoder opens or creates path and begins (or resumes, with
// WithResumeStream) a streaming session writing a top-level list
// (ListKind) or map (MapKind).
func NewStreamEncoder(path string, kind ContainerKind, opts ...StreamEncoderOption) (*StreamEncoder, error) {
	enc, err := stream.NewEncoder(path, kind, opts...)
	if err != nil {
		return nil, translateErr(err)
	}

	return enc, nil
}

// NewStreamDecoder opens path for streaming read of the container
// header at its start (or WithStreamDecoderFileOffset).
func NewStreamDecoder(path string, opts ...StreamDecoderOption) (*StreamDecoder, error) {
	dec, err := stream.NewDecoder(path, opts...)
	if err != nil {
		return nil, translateErr(err)
	}

	return dec, nil
}

// ManualAllocations fixes the encode buffer's starting-capacity
// estimate and disables further adaptation. Both inputs must be
// strictly positive.
func ManualAllocations(itemSize, reallocSize int) error {
	return translateErr(governor.Manual(itemSize, reallocSize))
}

// DynamicAllocations re-enables the adaptive allocation heuristic,
// optionally seeding it with an (itemSize, reallocSize) pair.
func DynamicAllocations(seed ...int) error {
	return translateErr(governor.Dynamic(seed...))
}

func itemCountOf(v any) int {
	switch vv := v.(type) {
	case []any:
		return len(vv)
	case *Map:
		return vv.Len()
	case map[string]any:
		return len(vv)
	default:
		return 1
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case []any, *Map, map[string]any:
		return true
	default:
		return false
	}
}

// Encode writes v to a new byte slice. v may be any scalar the format
// supports, []any, *Map, map[string]any, or a type registered via
// WithEncoderTypes. A map[string]any is written in Go's map iteration
// order, which can differ from run to run; use *Map for a stable order.
func Encode(v any, opts ...EncodeOption) ([]byte, error) {
	cfg := &encodeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, translateErr(err)
	}

	n := itemCountOf(v)
	sink := buffer.NewEncodeSink(governor.InitialCapacity(n))
	defer sink.Release()

	initialCap := sink.Cap()

	var err error
	if cfg.streamCompatible && isContainer(v) {
		err = value.EncodeContainer(sink, v, cfg.types, true)
	} else {
		err = value.EncodeValue(sink, v, cfg.types)
	}
	if err != nil {
		return nil, translateErr(err)
	}

	if isContainer(v) {
		governor.Update(governor.Observation{
			Reallocated:  sink.Reallocated(),
			InitialAlloc: initialCap,
			FinalOffset:  sink.Len(),
			NItems:       n,
		})
	}

	return append([]byte(nil), sink.Bytes()...), nil
}

// EncodeFile writes v's encoding to path, creating or truncating it.
func EncodeFile(path string, v any, opts ...EncodeOption) error {
	data, err := Encode(v, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}

	return nil
}

// Decode reads one complete top-level frame from data.
func Decode(data []byte, opts ...DecodeOption) (any, error) {
	cfg := &decodeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, translateErr(err)
	}

	src := buffer.NewMemSource(data)

	v, err := value.DecodeValue(src, cfg.types, cfg.referenced, nil)
	if err != nil {
		return nil, translateErr(err)
	}

	return v, nil
}

// DecodeFile reads path into memory and decodes one complete top-level
// frame from it.
func DecodeFile(path string, opts ...DecodeOption) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}

	return Decode(data, opts...)
}

// Validate reports whether data holds one well-formed top-level frame
// and nothing else.
func Validate(data []byte, opts ...ValidateOption) (bool, error) {
	cfg := &validateConfig{chunkSize: stream.DefaultChunkSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return false, translateErr(err)
	}

	ok, err := validate.Bytes(data)

	return finishValidate(ok, err, cfg.errOnInvalid)
}

// ValidateFile reports whether the file at path holds one well-formed
// frame starting at its configured offset (WithValidateFileOffset),
// read in chunkSize windows (WithValidateChunkSize).
func ValidateFile(path string, opts ...ValidateOption) (bool, error) {
	cfg := &validateConfig{chunkSize: stream.DefaultChunkSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return false, translateErr(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSeekFailed, err)
	}

	ok, err := validate.File(f, cfg.fileOffset, cfg.chunkSize, info.Size())

	return finishValidate(ok, err, cfg.errOnInvalid)
}

func finishValidate(ok bool, err error, errOnInvalid bool) (bool, error) {
	if err != nil {
		if errOnInvalid {
			return false, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}

		return false, nil
	}
	if !ok && errOnInvalid {
		return false, ErrValidationFailed
	}

	return ok, nil
}

// translateErr maps an internal subpackage sentinel to the public error
// taxonomy in errs.go. The original error's message is kept in the text,
// but the original error itself is not part of the returned chain.
func translateErr(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case value.IsUnsupportedType(err):
		return fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	case value.IsIntegerTooWide(err):
		return fmt.Errorf("%w: %v", ErrIntegerTooWide, err)
	case value.IsUsertypeEncodeFailed(err):
		return fmt.Errorf("%w: %v", ErrUsertypeEncodeFailed, err)
	case value.IsUnknownTag(err), validate.IsUnknownTag(err):
		return fmt.Errorf("%w: %v", ErrUnknownTag, err)
	case meta.IsInvalidLength(err), value.IsNonStringKey(err):
		return fmt.Errorf("%w: %v", ErrMalformedLength, err)
	case buffer.IsOverread(err):
		return fmt.Errorf("%w: %v", ErrOverread, err)
	case value.IsInvalidUTF8(err):
		return fmt.Errorf("%w: %v", ErrInvalidUTF8, err)
	case value.IsUsertypeDecodeFailed(err):
		return fmt.Errorf("%w: %v", ErrUsertypeDecodeFailed, err)
	case value.IsUnknownUsertypeIndex(err), meta.IsUtypeIndexOutOfRange(err):
		return fmt.Errorf("%w: %v", ErrUnknownUsertypeIndex, err)
	case stream.IsBadStreamHeader(err):
		return fmt.Errorf("%w: %v", ErrBadStreamHeader, err)
	case validate.IsPastEndOfFile(err):
		return fmt.Errorf("%w: %v", ErrUnexpectedPosition, err)
	case usertype.IsRegistryFull(err), usertype.IsAlreadyRegistered(err), usertype.IsIndexOutOfRange(err),
		buffer.IsValueLargerThanChunk(err), stream.IsInvalidContainerKind(err), stream.IsInvalidChunkSize(err),
		stream.IsKindMismatch(err), governor.IsInvalidAllocation(err):
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	default:
		return err
	}
}
