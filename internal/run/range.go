package run

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned for a frame range that selects no frames.
var ErrInvalidRange = errors.New("invalid frame range")

// Range is the half-open frame interval [From, To).
type Range struct {
	From int
	To   int
}

// Validate requires 0 <= From < To.
func (r Range) Validate() error {
	if r.From < 0 {
		return fmt.Errorf("%w: from %d must not be negative", ErrInvalidRange, r.From)
	}
	if r.From >= r.To {
		return fmt.Errorf("%w: from %d must be less than to %d", ErrInvalidRange, r.From, r.To)
	}
	return nil
}

// Len is the number of frames in the range.
func (r Range) Len() int {
	if r.To <= r.From {
		return 0
	}
	return r.To - r.From
}

// OutputName is the default output file name for the range.
func (r Range) OutputName() string {
	return fmt.Sprintf("%06d-%06d.csv", r.From, r.To)
}
