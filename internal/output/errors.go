package output

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the output package.
var (
	// ErrWriterClosed is returned when attempting to write to a closed writer.
	ErrWriterClosed = ewrap.New("writer is closed")

	// ErrEmptyPath is returned when a file writer is created without a path.
	ErrEmptyPath = ewrap.New("log file path is required")
)
