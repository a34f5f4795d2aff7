package stream

import (
	"io"
	"os"

	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
	"github.com/compaqt-go/compaqt/internal/options"
	"github.com/compaqt-go/compaqt/internal/value"
	"github.com/compaqt-go/compaqt/usertype"
)

// Decoder is an open streaming-read session over one top-level
// container in a file.
type Decoder struct {
	f              *os.File
	kind           format.Kind
	startOffset    int64
	currOffset     int64
	itemsRemaining uint64
	chunkSize      int
	types          *usertype.DecodeRegistry
}

// NewDecoder opens path for streaming read, parsing the Mode-3/8
// container header at fileOffset (0 by default).
func NewDecoder(path string, opts ...DecoderOption) (*Decoder, error) {
	cfg := &decoderConfig{chunkSize: DefaultChunkSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header := make([]byte, format.StreamHeaderSize())
	if _, err := f.ReadAt(header, cfg.fileOffset); err != nil {
		f.Close()

		return nil, err
	}

	kind, ok := format.KindOf(header[0])
	if !ok || (kind != format.KindArray && kind != format.KindDictn) || !format.IsStreamHeader(header[0]) {
		f.Close()

		return nil, errBadStreamHeader
	}

	nitems := le.Uint64(header[1:])

	return &Decoder{
		f:              f,
		kind:           kind,
		startOffset:    cfg.fileOffset,
		currOffset:     cfg.fileOffset + int64(format.StreamHeaderSize()),
		itemsRemaining: nitems,
		chunkSize:      cfg.chunkSize,
		types:          cfg.types,
	}, nil
}

// Read decodes up to numItems top-level children (list elements, or map
// pairs) starting at the session's current position. numItems is capped
// at ItemsRemaining; if it is zero (or nothing remains), Read returns an
// empty container of the session's kind.
func (d *Decoder) Read(numItems int) (any, error) {
	if numItems < 0 {
		numItems = 0
	}
	if uint64(numItems) > d.itemsRemaining {
		numItems = int(d.itemsRemaining)
	}

	if numItems == 0 {
		return d.emptyContainer(), nil
	}

	end, err := d.f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	src := buffer.NewChunkSource(d.f, d.currOffset, d.chunkSize, end)

	result, err := d.readItems(src, numItems)
	if err != nil {
		return nil, err
	}

	d.currOffset = src.Pos()
	d.itemsRemaining -= uint64(numItems)

	return result, nil
}

func (d *Decoder) readItems(src *buffer.ChunkSource, numItems int) (any, error) {
	switch d.kind {
	case format.KindArray:
		items := make([]any, 0, numItems)
		for range numItems {
			v, err := value.DecodeValue(src, d.types, false, nil)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}

		return items, nil

	case format.KindDictn:
		m := value.NewMap(numItems)
		for range numItems {
			key, err := value.DecodeValue(src, d.types, false, nil)
			if err != nil {
				return nil, err
			}
			keyStr, ok := key.(string)
			if !ok {
				return nil, errKindMismatch
			}

			v, err := value.DecodeValue(src, d.types, false, nil)
			if err != nil {
				return nil, err
			}
			m.Append(keyStr, v)
		}

		return m, nil

	default:
		return nil, errInvalidContainerKind
	}
}

func (d *Decoder) emptyContainer() any {
	if d.kind == format.KindDictn {
		return value.NewMap(0)
	}

	return []any{}
}

// StartOffset returns the absolute file offset of the container header.
func (d *Decoder) StartOffset() int64 { return d.startOffset }

// CurrOffset returns the absolute file offset of the next byte to read.
func (d *Decoder) CurrOffset() int64 { return d.currOffset }

// ItemsRemaining returns the number of top-level children not yet read.
func (d *Decoder) ItemsRemaining() uint64 { return d.itemsRemaining }

// Close releases the session's file handle.
func (d *Decoder) Close() error {
	return d.f.Close()
}
