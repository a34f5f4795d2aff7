package value

import "errors"

var (
	errUnsupportedType      = errors.New("value: unsupported datatype")
	errIntegerTooWide       = errors.New("value: integer too wide for a 64-bit payload")
	errUsertypeEncodeFailed = errors.New("value: usertype encoder failed")

	errUnknownTag           = errors.New("value: unknown wire tag")
	errInvalidUTF8          = errors.New("value: invalid UTF-8 in string value")
	errUsertypeDecodeFailed = errors.New("value: usertype decoder failed")
	errUnknownUsertypeIndex = errors.New("value: unknown usertype index")
	errNonStringKey         = errors.New("value: map key frame is not a string")
)

func IsUnsupportedType(err error) bool      { return errors.Is(err, errUnsupportedType) }
func IsIntegerTooWide(err error) bool       { return errors.Is(err, errIntegerTooWide) }
func IsUsertypeEncodeFailed(err error) bool { return errors.Is(err, errUsertypeEncodeFailed) }
func IsUnknownTag(err error) bool           { return errors.Is(err, errUnknownTag) }
func IsInvalidUTF8(err error) bool          { return errors.Is(err, errInvalidUTF8) }
func IsUsertypeDecodeFailed(err error) bool { return errors.Is(err, errUsertypeDecodeFailed) }
func IsUnknownUsertypeIndex(err error) bool { return errors.Is(err, errUnknownUsertypeIndex) }
func IsNonStringKey(err error) bool         { return errors.Is(err, errNonStringKey) }
