package report

import "errors"

// ErrWriteReport is returned when a report file cannot be produced.
var ErrWriteReport = errors.New("write report")
