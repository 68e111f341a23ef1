package fetch

import "errors"

// Sentinel kinds for fetch errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	ErrInvalidPayload   = errors.New("invalid upstream payload")
)
