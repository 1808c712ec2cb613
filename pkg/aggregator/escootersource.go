package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/wayfarer/wayfarer/pkg/providers/osrm"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

// escooterDurationFactor scales a cycling duration down to an e-scooter one.
const escooterDurationFactor = 0.8

// EscooterSource derives e-scooter options from the cycling route with a
// fixed duration multiplier and rental pricing.
type EscooterSource struct {
	Client *osrm.Client
}

func (s EscooterSource) GetName() string {
	return "E-Scooter"
}

func (s EscooterSource) Supports() []tdf.TransportMode {
	return []tdf.TransportMode{tdf.TransportModeEscooter}
}

func (s EscooterSource) Lookup(ctx context.Context, mode tdf.TransportMode, request *tdf.RouteRequest) (*tdf.TransportOption, error) {
	result, err := s.Client.Route(ctx, osrm.ProfileCycling, request.Origin(), request.Destination())
	if err != nil {
		return nil, err
	}

	duration := time.Duration(float64(result.Duration) * escooterDurationFactor)

	return &tdf.TransportOption{
		Mode:                tdf.TransportModeEscooter,
		TotalDistanceMeters: result.DistanceMeters,
		TotalDuration:       duration,
		EstimatedCostUSD:    EstimateEscooterCost(duration),
		Provider:            fmt.Sprintf("osrm-%s", osrm.ProfileCycling),
		IsRealistic:         true,
		Steps: []tdf.TransportOptionStep{
			{
				Instruction:     "E-scooter ride",
				DistanceMeters:  result.DistanceMeters,
				Duration:        duration,
				EncodedPolyline: result.EncodedPolyline,
			},
		},
	}, nil
}
