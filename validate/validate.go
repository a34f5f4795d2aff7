// Package validate implements the structural recognizer: it walks the
// same grammar as the value codec but never materializes a payload, so
// it can check a byte stream or a file range cheaply before a caller
// commits to a full decode.
package validate

import (
	"github.com/compaqt-go/compaqt/format"
	"github.com/compaqt-go/compaqt/internal/buffer"
	"github.com/compaqt-go/compaqt/internal/meta"
)

// Bytes reports whether data holds one well-formed top-level frame
// followed by nothing else.
func Bytes(data []byte) (bool, error) {
	src := buffer.NewMemSource(data)

	if err := skipValue(src); err != nil {
		return false, err
	}
	if src.Remaining() != 0 {
		return false, nil
	}

	return true, nil
}

// File reports whether r holds one well-formed frame starting at
// fileOffset, read in chunkSize windows; end is the offset one past the
// last valid byte.
func File(r ChunkReaderAt, fileOffset int64, chunkSize int, end int64) (bool, error) {
	src := buffer.NewChunkSource(r, fileOffset, chunkSize, end)

	if err := skipValue(src); err != nil {
		return false, err
	}
	if src.Pos() > end {
		return false, errPastEndOfFile
	}

	return true, nil
}

// ChunkReaderAt is the subset of *os.File the file validator needs;
// satisfied directly by *os.File.
type ChunkReaderAt interface {
	ReadAt(p []byte, off int64) (int, error)
}

// skipValue advances src past one well-formed frame without
// materializing its payload. Overread, an unknown tag (the reserved
// 0b111), or any child's failure makes the whole frame invalid.
func skipValue(src buffer.Source) error {
	if err := src.Ensure(1); err != nil {
		return err
	}
	head := src.Next(1)[0]

	kind, ok := format.KindOf(head)
	if !ok {
		return errUnknownTagForSkip
	}

	switch kind {
	case format.KindBoolFalse, format.KindBoolTrue, format.KindNontp:
		return nil

	case format.KindFloat:
		return skipN(src, 8)

	case format.KindIntgr:
		nbytes, err := meta.ReadIntegerHead(head)
		if err != nil {
			return err
		}

		return skipN(src, nbytes)

	case format.KindStrng, format.KindBytes:
		length, err := meta.ReadVarlen(src, head)
		if err != nil {
			return err
		}

		return skipN(src, length)

	case format.KindUtype:
		_, length, err := meta.ReadUTypeHead(src, head)
		if err != nil {
			return err
		}

		return skipN(src, length)

	case format.KindArray:
		nitems, err := meta.ReadVarlen(src, head)
		if err != nil {
			return err
		}
		for range nitems {
			if err := skipValue(src); err != nil {
				return err
			}
		}

		return nil

	case format.KindDictn:
		npairs, err := meta.ReadVarlen(src, head)
		if err != nil {
			return err
		}
		for range npairs * 2 {
			if err := skipValue(src); err != nil {
				return err
			}
		}

		return nil

	default:
		return errUnknownTagForSkip
	}
}

func skipN(src buffer.Source, n int) error {
	if n == 0 {
		return nil
	}
	if err := src.Ensure(n); err != nil {
		return err
	}
	src.Next(n)

	return nil
}
