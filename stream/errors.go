package stream

import "errors"

var (
	errInvalidContainerKind = errors.New("stream: container kind must be array or map")
	errInvalidChunkSize     = errors.New("stream: chunk size must be positive")
	errBadStreamHeader      = errors.New("stream: file does not start with a streaming-compatible container header")
	errKindMismatch         = errors.New("stream: value kind does not match the session's container kind")
)

func IsInvalidContainerKind(err error) bool { return errors.Is(err, errInvalidContainerKind) }
func IsInvalidChunkSize(err error) bool     { return errors.Is(err, errInvalidChunkSize) }
func IsBadStreamHeader(err error) bool      { return errors.Is(err, errBadStreamHeader) }
func IsKindMismatch(err error) bool         { return errors.Is(err, errKindMismatch) }
