package delaunay

import "github.com/pkg/errors"

var (
	// ErrLocateFailure is returned when a point location walk gives up, either
	// because it exhausted its step budget or because the point lies outside
	// the triangulated region.
	ErrLocateFailure = errors.New("point location failed")

	ErrTooFewPoints = errors.New("at least two distinct points are required")
)
