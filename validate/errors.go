package validate

import "errors"

// errPastEndOfFile is the file-path-only failure: traversal claimed to
// finish at a position beyond the file's actual end.
var errPastEndOfFile = errors.New("validate: consumed position exceeds end of file")

// errUnknownTagForSkip is returned for the reserved 0b111 tag, or any
// other bit pattern the metadata codec doesn't recognize as a frame.
var errUnknownTagForSkip = errors.New("validate: unknown type tag")

// IsPastEndOfFile reports whether err is the past-end-of-file condition.
func IsPastEndOfFile(err error) bool { return errors.Is(err, errPastEndOfFile) }

// IsUnknownTag reports whether err is the unrecognized-tag condition.
func IsUnknownTag(err error) bool { return errors.Is(err, errUnknownTagForSkip) }
