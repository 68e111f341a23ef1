package types

import "errors"

// Sentinel kinds for tag decoding errors.
var (
	ErrUnknownTag = errors.New("unknown tag")
)
