// Package stream implements the streaming engine: an appendable,
// file-backed container that can be written and read in chunks without
// holding the whole collection in memory.
package stream

import (
	"io"
	"os"

	"github.com/compaqt-go/compaqt/endian"
	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
	"github.com/compaqt-go/compaqt/internal/options"
	"github.com/compaqt-go/compaqt/internal/value"
	"github.com/compaqt-go/compaqt/usertype"
)

var le = endian.GetLittleEndianEngine()

// Encoder is an open streaming-write session over one top-level
// container (an array or a map) in a file.
type Encoder struct {
	f            *os.File
	kind         format.Kind
	startOffset  int64
	sessionStart int64 // curr_offset when this session's sink was created
	currOffset   int64
	nitems       uint64
	sink         *buffer.ChunkSink
	types        *usertype.EncodeRegistry
}

// NewEncoder opens or creates path and begins (or resumes) a streaming
// session writing a top-level container of kind (format.KindArray or
// format.KindDictn).
func NewEncoder(path string, kind format.Kind, opts ...EncoderOption) (*Encoder, error) {
	if kind != format.KindArray && kind != format.KindDictn {
		return nil, errInvalidContainerKind
	}

	cfg := &encoderConfig{chunkSize: DefaultChunkSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	tag := format.TagArray
	if kind == format.KindDictn {
		tag = format.TagDictn
	}

	switch {
	case cfg.resumeStream:
		return resumeEncoder(path, kind, cfg)
	case cfg.preserveFile:
		return appendEncoder(path, kind, tag, cfg)
	default:
		return freshEncoder(path, kind, tag, cfg)
	}
}

func freshEncoder(path string, kind format.Kind, tag byte, cfg *encoderConfig) (*Encoder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	header := make([]byte, format.StreamHeaderSize())
	header[0] = format.StreamHeaderByte(tag)
	// nitems starts at zero, bytes 1..8 already zeroed.

	if _, err := f.WriteAt(header, cfg.fileOffset); err != nil {
		f.Close()

		return nil, err
	}

	start := cfg.fileOffset
	curr := start + int64(len(header))
	if _, err := f.Seek(curr, io.SeekStart); err != nil {
		f.Close()

		return nil, err
	}

	return &Encoder{
		f:            f,
		kind:         kind,
		startOffset:  start,
		sessionStart: curr,
		currOffset:   curr,
		sink:         buffer.NewChunkSink(f, cfg.chunkSize),
		types:        cfg.types,
	}, nil
}

func appendEncoder(path string, kind format.Kind, tag byte, cfg *encoderConfig) (*Encoder, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	header := make([]byte, format.StreamHeaderSize())
	if _, err := f.ReadAt(header, cfg.fileOffset); err != nil {
		f.Close()

		return nil, err
	}
	if !format.IsStreamHeader(header[0]) || format.Tag3(header[0]) != tag {
		f.Close()

		return nil, errBadStreamHeader
	}

	nitems := le.Uint64(header[1:])

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()

		return nil, err
	}

	return &Encoder{
		f:            f,
		kind:         kind,
		startOffset:  cfg.fileOffset,
		sessionStart: end,
		currOffset:   end,
		nitems:       nitems,
		sink:         buffer.NewChunkSink(f, cfg.chunkSize),
		types:        cfg.types,
	}, nil
}

func resumeEncoder(path string, kind format.Kind, cfg *encoderConfig) (*Encoder, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	header := make([]byte, format.StreamHeaderSize())
	if _, err := f.ReadAt(header, cfg.fileOffset); err != nil {
		f.Close()

		return nil, err
	}

	gotKind, ok := format.KindOf(header[0])
	if !ok || (gotKind != format.KindArray && gotKind != format.KindDictn) || !format.IsStreamHeader(header[0]) {
		f.Close()

		return nil, errBadStreamHeader
	}
	if gotKind != kind {
		f.Close()

		return nil, errInvalidContainerKind
	}

	nitems := le.Uint64(header[1:])

	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()

		return nil, err
	}

	return &Encoder{
		f:            f,
		kind:         kind,
		startOffset:  cfg.fileOffset,
		sessionStart: end,
		currOffset:   end,
		nitems:       nitems,
		sink:         buffer.NewChunkSink(f, cfg.chunkSize),
		types:        cfg.types,
	}, nil
}

// Write appends v's top-level children (list elements, or map pairs) to
// the session's container. v's kind must match the session's container
// kind. On return the file's header has been patched to reflect the new
// item count.
func (e *Encoder) Write(v any) error {
	added, err := e.writeChildren(v)
	if err != nil {
		return err
	}

	if err := e.sink.Flush(); err != nil {
		return err
	}

	e.nitems += added
	e.currOffset = e.sessionStart + e.sink.Flushed()

	return e.patchHeader()
}

func (e *Encoder) writeChildren(v any) (uint64, error) {
	switch e.kind {
	case format.KindArray:
		items, ok := v.([]any)
		if !ok {
			return 0, errKindMismatch
		}
		for _, item := range items {
			if err := value.EncodeValue(e.sink, item, e.types); err != nil {
				return 0, err
			}
		}

		return uint64(len(items)), nil

	case format.KindDictn:
		switch vv := v.(type) {
		case *value.Map:
			for _, kv := range vv.Pairs() {
				if err := value.EncodeValue(e.sink, kv.Key, e.types); err != nil {
					return 0, err
				}
				if err := value.EncodeValue(e.sink, kv.Value, e.types); err != nil {
					return 0, err
				}
			}

			return uint64(vv.Len()), nil

		case map[string]any:
			for k, val := range vv {
				if err := value.EncodeValue(e.sink, k, e.types); err != nil {
					return 0, err
				}
				if err := value.EncodeValue(e.sink, val, e.types); err != nil {
					return 0, err
				}
			}

			return uint64(len(vv)), nil

		default:
			return 0, errKindMismatch
		}

	default:
		return 0, errInvalidContainerKind
	}
}

func (e *Encoder) patchHeader() error {
	count := le.AppendUint64(nil, e.nitems)
	_, err := e.f.WriteAt(count, e.startOffset+1)

	return err
}

// StartOffset returns the absolute file offset of the container header.
func (e *Encoder) StartOffset() int64 { return e.startOffset }

// CurrOffset returns the absolute file offset of the next byte to write.
func (e *Encoder) CurrOffset() int64 { return e.currOffset }

// Close releases the session's chunk buffer and underlying file handle.
func (e *Encoder) Close() error {
	e.sink.Release()

	return e.f.Close()
}
