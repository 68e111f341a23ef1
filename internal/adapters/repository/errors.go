package repository

import "errors"

// Sentinel kinds for participant index storage errors.
var (
	ErrNotFound = errors.New("participant index not found")
	ErrCorrupt  = errors.New("participant index corrupt")
)
