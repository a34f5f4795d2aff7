package compaqt

import "errors"

// Sentinel errors, grouped by the error kind from the format's error
// taxonomy. Callers use errors.Is against these; call sites wrap them
// with fmt.Errorf("%w: ...", sentinel, detail) to attach context without
// losing the sentinel identity.

// EncodingError family.
var (
	ErrUnsupportedType      = errors.New("compaqt: unsupported datatype")
	ErrIntegerTooWide       = errors.New("compaqt: integer too wide for a 64-bit payload")
	ErrUsertypeEncodeFailed = errors.New("compaqt: usertype encoder failed")
)

// DecodingError family.
var (
	ErrUnknownTag          = errors.New("compaqt: unknown wire tag")
	ErrMalformedLength     = errors.New("compaqt: malformed length")
	ErrOverread            = errors.New("compaqt: read past end of buffer")
	ErrInvalidUTF8         = errors.New("compaqt: invalid UTF-8 in string value")
	ErrUsertypeDecodeFailed = errors.New("compaqt: usertype decoder failed")
	ErrUnknownUsertypeIndex = errors.New("compaqt: unknown usertype index")
)

// ValidationError family.
var ErrValidationFailed = errors.New("compaqt: validation failed")

// FileOffsetError family.
var (
	ErrSeekFailed         = errors.New("compaqt: file seek failed")
	ErrUnexpectedPosition = errors.New("compaqt: read from unexpected file position")
	ErrBadStreamHeader    = errors.New("compaqt: file does not start with a streaming-compatible container header")
)

// FileNotFoundError family.
var ErrFileNotFound = errors.New("compaqt: file not found")

// MemoryError family.
var ErrAllocationFailed = errors.New("compaqt: allocation failed")

// ValueError family.
var (
	ErrMissingArgument = errors.New("compaqt: missing required argument")
	ErrInvalidArgument = errors.New("compaqt: invalid argument")
)

// IsEncodingError reports whether err belongs to the EncodingError
// family: an unsupported host type, an integer too wide for a 64-bit
// payload, or a usertype encoder failure.
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrIntegerTooWide) ||
		errors.Is(err, ErrUsertypeEncodeFailed)
}

// IsDecodingError reports whether err belongs to the DecodingError
// family.
func IsDecodingError(err error) bool {
	return errors.Is(err, ErrUnknownTag) ||
		errors.Is(err, ErrMalformedLength) ||
		errors.Is(err, ErrOverread) ||
		errors.Is(err, ErrInvalidUTF8) ||
		errors.Is(err, ErrUsertypeDecodeFailed) ||
		errors.Is(err, ErrUnknownUsertypeIndex)
}

// IsValidationError reports whether err is the ValidationError family.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsFileOffsetError reports whether err belongs to the FileOffsetError
// family.
func IsFileOffsetError(err error) bool {
	return errors.Is(err, ErrSeekFailed) ||
		errors.Is(err, ErrUnexpectedPosition) ||
		errors.Is(err, ErrBadStreamHeader)
}
