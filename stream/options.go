package stream

import (
	"github.com/compaqt-go/compaqt/internal/options"
	"github.com/compaqt-go/compaqt/usertype"
)

// DefaultChunkSize is the streaming session's default chunk size: 32 KiB.
const DefaultChunkSize = 32 * 1024

type encoderConfig struct {
	chunkSize    int
	resumeStream bool
	fileOffset   int64
	preserveFile bool
	types        *usertype.EncodeRegistry
}

// EncoderOption configures a StreamEncoder at construction.
type EncoderOption = options.Option[*encoderConfig]

// WithEncoderChunkSize overrides the default 32 KiB chunk size.
func WithEncoderChunkSize(n int) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		if n <= 0 {
			return errInvalidChunkSize
		}
		c.chunkSize = n

		return nil
	})
}

// WithEncoderFileOffset starts the session's container header at a
// non-zero offset into the file.
func WithEncoderFileOffset(offset int64) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		c.fileOffset = offset

		return nil
	})
}

// WithResumeStream reopens an existing streaming file and continues
// appending to its container, reading the current item count from its
// header rather than starting a new one.
func WithResumeStream() EncoderOption {
	return options.NoError(func(c *encoderConfig) { c.resumeStream = true })
}

// WithPreserveFile opens the file for appending without rewriting the
// existing header's item count to zero; the caller is responsible for
// the file already containing a valid container at fileOffset.
func WithPreserveFile() EncoderOption {
	return options.NoError(func(c *encoderConfig) { c.preserveFile = true })
}

// WithEncoderTypes registers a usertype encode registry for the session.
func WithEncoderTypes(r *usertype.EncodeRegistry) EncoderOption {
	return options.NoError(func(c *encoderConfig) { c.types = r })
}

type decoderConfig struct {
	chunkSize  int
	fileOffset int64
	types      *usertype.DecodeRegistry
}

// DecoderOption configures a StreamDecoder at construction.
type DecoderOption = options.Option[*decoderConfig]

// WithDecoderChunkSize overrides the default 32 KiB chunk size.
func WithDecoderChunkSize(n int) DecoderOption {
	return options.New(func(c *decoderConfig) error {
		if n <= 0 {
			return errInvalidChunkSize
		}
		c.chunkSize = n

		return nil
	})
}

// WithDecoderFileOffset starts reading the container header at a
// non-zero offset into the file.
func WithDecoderFileOffset(offset int64) DecoderOption {
	return options.New(func(c *decoderConfig) error {
		c.fileOffset = offset

		return nil
	})
}

// WithDecoderTypes registers a usertype decode registry for the session.
func WithDecoderTypes(r *usertype.DecodeRegistry) DecoderOption {
	return options.NoError(func(c *decoderConfig) { c.types = r })
}
