package compaqt

import (
	"github.com/compaqt-go/compaqt/internal/options"
	"github.com/compaqt-go/compaqt/stream"
	"github.com/compaqt-go/compaqt/usertype"
)

type encodeConfig struct {
	types            *usertype.EncodeRegistry
	streamCompatible bool
}

// EncodeOption configures Encode and EncodeFile.
type EncodeOption = options.Option[*encodeConfig]

// WithEncoderTypes registers a usertype encode registry for the call.
func WithEncoderTypes(r *EncoderTypes) EncodeOption {
	return options.NoError(func(c *encodeConfig) { c.types = r })
}

// WithStreamCompatible forces the top-level container's header to the
// fixed-width Mode-3/8 form a StreamDecoder can resume reading from.
// It applies to lists and maps; a scalar value is encoded as its usual
// single frame.
func WithStreamCompatible() EncodeOption {
	return options.NoError(func(c *encodeConfig) { c.streamCompatible = true })
}

type decodeConfig struct {
	types      *usertype.DecodeRegistry
	referenced bool
}

// DecodeOption configures Decode and DecodeFile.
type DecodeOption = options.Option[*decodeConfig]

// WithDecoderTypes registers a usertype decode registry for the call.
func WithDecoderTypes(r *DecoderTypes) DecodeOption {
	return options.NoError(func(c *decodeConfig) { c.types = r })
}

// WithReferenced decodes STRNG and BYTES as zero-copy views over the
// input instead of copies. Views must not outlive the decoded input.
func WithReferenced() DecodeOption {
	return options.NoError(func(c *decodeConfig) { c.referenced = true })
}

type validateConfig struct {
	errOnInvalid bool
	chunkSize    int
	fileOffset   int64
}

// ValidateOption configures Validate and ValidateFile.
type ValidateOption = options.Option[*validateConfig]

// WithErrOnInvalid makes Validate/ValidateFile return a non-nil error
// (ErrValidationFailed) instead of (false, nil) when the input is
// structurally invalid.
func WithErrOnInvalid() ValidateOption {
	return options.NoError(func(c *validateConfig) { c.errOnInvalid = true })
}

// WithValidateChunkSize overrides the default chunk size used by
// ValidateFile's file window reads.
func WithValidateChunkSize(n int) ValidateOption {
	return options.New(func(c *validateConfig) error {
		if n <= 0 {
			return ErrInvalidArgument
		}
		c.chunkSize = n

		return nil
	})
}

// WithValidateFileOffset starts ValidateFile's traversal at a non-zero
// offset into the file.
func WithValidateFileOffset(offset int64) ValidateOption {
	return options.NoError(func(c *validateConfig) { c.fileOffset = offset })
}

// Re-exported streaming-session options, so callers configuring a
// StreamEncoder/StreamDecoder through this package never need to import
// the stream subpackage directly.
var (
	WithStreamEncoderChunkSize  = stream.WithEncoderChunkSize
	WithStreamEncoderFileOffset = stream.WithEncoderFileOffset
	WithResumeStream            = stream.WithResumeStream
	WithPreserveFile            = stream.WithPreserveFile
	WithStreamEncoderTypes      = stream.WithEncoderTypes
	WithStreamDecoderChunkSize  = stream.WithDecoderChunkSize
	WithStreamDecoderFileOffset = stream.WithDecoderFileOffset
	WithStreamDecoderTypes      = stream.WithDecoderTypes
)
