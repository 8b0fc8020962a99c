package align

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned by every [Matrix] accessor when the requested
	// cell lies outside [0, rows) x [0, cols). The concrete error is a
	// [*RangeError] describing the offending index.
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnknownMode is returned by [Scoring.Validate] and [ParseMode] for a
	// mode other than [SemiGlobal] or [Global].
	ErrUnknownMode = errors.New("unknown alignment mode")
)

// RangeError reports an access outside the matrix bounds.
type RangeError struct {
	Row, Col   int // requested cell
	Rows, Cols int // matrix dimensions
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cell (%d, %d) outside %dx%d matrix: %v", e.Row, e.Col, e.Rows, e.Cols, ErrOutOfRange)
}

// Unwrap returns [ErrOutOfRange].
func (e *RangeError) Unwrap() error { return ErrOutOfRange }
