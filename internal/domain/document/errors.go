package document

import "errors"

// Sentinel kinds for document errors. Both are non-fatal for an index build.
var (
	ErrUnparseable    = errors.New("unparseable competition document")
	ErrUnclassifiable = errors.New("unclassifiable competition document")
)
