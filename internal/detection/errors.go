package detection

import "errors"

var (
	// ErrInvalidParameter is returned when detector parameters or inputs are
	// rejected before any computation starts.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch signals that pyramid levels disagree in shape. It is
	// only ever raised as a panic value since it indicates a programming error.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
