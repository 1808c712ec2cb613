package aggregator

import (
	"context"

	"github.com/wayfarer/wayfarer/pkg/tdf"
)

// ModeSource produces a TransportOption for the modes it supports. A source
// that has no route for a request returns tdf.ErrNoRouteFound; any error is
// absorbed by the aggregator as an absent mode.
type ModeSource interface {
	GetName() string
	Supports() []tdf.TransportMode
	Lookup(ctx context.Context, mode tdf.TransportMode, request *tdf.RouteRequest) (*tdf.TransportOption, error)
}
