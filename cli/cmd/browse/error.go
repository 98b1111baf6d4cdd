package browse

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoEntries   = errors.New("no entries to browse")
)
