package governor

import "errors"

// errInvalidAllocation is returned when Manual or Dynamic receives a
// non-positive sizing argument. The root compaqt package wraps this
// into the public ErrInvalidArgument sentinel.
var errInvalidAllocation = errors.New("governor: item and realloc sizes must be positive")

// IsInvalidAllocation reports whether err originated from a bad Manual
// or Dynamic call, so the root package can translate it without
// importing an internal sentinel directly into its own error chain.
func IsInvalidAllocation(err error) bool {
	return errors.Is(err, errInvalidAllocation)
}
