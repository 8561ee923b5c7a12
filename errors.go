package zcurve

import "errors"

var (
	// ErrNoClusterCounts is returned when a sweep is requested with an
	// empty k sequence.
	ErrNoClusterCounts = errors.New("zcurve: no cluster counts")

	// ErrInvalidSurrogates is returned when the surrogate count is not
	// positive.
	ErrInvalidSurrogates = errors.New("zcurve: surrogate count must be positive")
)
