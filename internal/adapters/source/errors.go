package source

import "errors"

// Sentinel kinds for document source errors.
var (
	ErrMissingDirectory = errors.New("competition directory does not exist")
)
