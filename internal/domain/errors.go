package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput signals that there is nothing to measure (no texts or no distances).
	ErrEmptyInput = errors.New("empty input")
	// ErrBinOutOfRange signals a bin count below 1 or above the distinct value count.
	ErrBinOutOfRange = errors.New("bin count out of range")
	// ErrInvariant signals an internal invariant violation (malformed bins, bad breaks).
	ErrInvariant = errors.New("invariant violation")
	// ErrInvalidRequest signals a malformed analysis request.
	ErrInvalidRequest = errors.New("invalid request")
)

// BinRangeError wraps ErrBinOutOfRange with the requested and permitted bin counts.
type BinRangeError struct {
	Requested int
	Max       int
}

func (e *BinRangeError) Error() string {
	return fmt.Sprintf("%s: requested %d, allowed 1..%d", ErrBinOutOfRange.Error(), e.Requested, e.Max)
}

func (e *BinRangeError) Unwrap() error { return ErrBinOutOfRange }

// NewBinRange creates a bin range error.
func NewBinRange(requested, maxBins int) error {
	return &BinRangeError{Requested: requested, Max: maxBins}
}
