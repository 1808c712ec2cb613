package aggregator

import (
	"context"
	"fmt"

	"github.com/wayfarer/wayfarer/pkg/providers/osrm"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

// StreetSource answers walking, cycling and driving lookups against an
// OSRM-compatible turn-by-turn engine.
type StreetSource struct {
	Client *osrm.Client
}

func (s StreetSource) GetName() string {
	return "Street Routing"
}

func (s StreetSource) Supports() []tdf.TransportMode {
	return []tdf.TransportMode{
		tdf.TransportModeWalking,
		tdf.TransportModeCycling,
		tdf.TransportModeDriving,
	}
}

func (s StreetSource) Lookup(ctx context.Context, mode tdf.TransportMode, request *tdf.RouteRequest) (*tdf.TransportOption, error) {
	profile := profileForMode(mode)

	result, err := s.Client.Route(ctx, profile, request.Origin(), request.Destination())
	if err != nil {
		return nil, err
	}

	cost := 0.0
	if mode == tdf.TransportModeDriving {
		cost = EstimateDrivingCost(result.DistanceMeters)
	}

	return &tdf.TransportOption{
		Mode:                mode,
		TotalDistanceMeters: result.DistanceMeters,
		TotalDuration:       result.Duration,
		EstimatedCostUSD:    cost,
		Provider:            fmt.Sprintf("osrm-%s", profile),
		IsRealistic:         true,
		Steps: []tdf.TransportOptionStep{
			{
				Instruction:     fmt.Sprintf("%s route", mode),
				DistanceMeters:  result.DistanceMeters,
				Duration:        result.Duration,
				EncodedPolyline: result.EncodedPolyline,
			},
		},
	}, nil
}

func profileForMode(mode tdf.TransportMode) osrm.Profile {
	switch mode {
	case tdf.TransportModeWalking:
		return osrm.ProfileWalking
	case tdf.TransportModeCycling:
		return osrm.ProfileCycling
	default:
		return osrm.ProfileDriving
	}
}
