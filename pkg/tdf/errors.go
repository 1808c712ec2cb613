package tdf

import "errors"

var (
	// ErrInvalidRequest is the only error that propagates to the caller as a
	// hard failure. Everything else degrades to fewer or rougher options.
	ErrInvalidRequest = errors.New("invalid route request")

	// ErrNoRouteFound means a mode legitimately has no itinerary.
	ErrNoRouteFound = errors.New("no route found")
)
