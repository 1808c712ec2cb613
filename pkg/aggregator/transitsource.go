package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wayfarer/wayfarer/pkg/planner"
	"github.com/wayfarer/wayfarer/pkg/providers/directionsapi"
	"github.com/wayfarer/wayfarer/pkg/realtime"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

// TransitSource plans over the local transit graph, enriches the legs with
// live delays, and falls back to the external directions provider when the
// local planner has nothing.
type TransitSource struct {
	Planner   *planner.Planner
	Snapshots *realtime.SnapshotStore

	Directions *directionsapi.Client
}

func (s TransitSource) GetName() string {
	return "Transit"
}

func (s TransitSource) Supports() []tdf.TransportMode {
	return []tdf.TransportMode{tdf.TransportModeTransit}
}

func (s TransitSource) Lookup(ctx context.Context, mode tdf.TransportMode, request *tdf.RouteRequest) (*tdf.TransportOption, error) {
	journey, err := s.Planner.FindRoute(ctx, request)

	if err != nil {
		if errors.Is(err, tdf.ErrNoRouteFound) && s.Directions != nil {
			return s.directionsFallback(ctx, request)
		}
		return nil, err
	}

	s.enrichWithDelays(journey)

	return s.journeyToOption(journey), nil
}

// enrichWithDelays adds each transit leg's current delay to its duration and
// annotates the leg for client display. A stale or missing update reads as
// zero delay.
func (s *TransitSource) enrichWithDelays(journey *tdf.Journey) {
	if s.Snapshots == nil {
		return
	}

	totalDelay := 0

	for i := range journey.Legs {
		leg := &journey.Legs[i]
		if leg.Type != tdf.JourneyLegTypeTransit {
			continue
		}

		delay := s.Snapshots.GetTripDelay(leg.TripID)
		if delay == 0 {
			continue
		}

		leg.DelaySeconds = delay
		leg.ArrivalTime = leg.ArrivalTime.Add(time.Duration(delay) * time.Second)
		totalDelay += delay
	}

	if totalDelay > 0 {
		journey.ArrivalTime = journey.ArrivalTime.Add(time.Duration(totalDelay) * time.Second)
		journey.TotalDuration += time.Duration(totalDelay) * time.Second
	}
}

func (s *TransitSource) journeyToOption(journey *tdf.Journey) *tdf.TransportOption {
	option := &tdf.TransportOption{
		Mode:                tdf.TransportModeTransit,
		TotalDistanceMeters: journey.TotalDistanceMeters,
		TotalDuration:       journey.TotalDuration,
		EstimatedCostUSD:    EstimateTransitCost(journey),
		Provider:            tdf.ProviderGTFSRaptor,
		IsRealistic:         true,
	}

	for _, leg := range journey.Legs {
		step := tdf.TransportOptionStep{
			DistanceMeters: leg.DistanceMeters,
			Duration:       leg.ArrivalTime.Sub(leg.DepartureTime),
			DepartureText:  leg.DepartureTime.Format("15:04"),
			ArrivalText:    leg.ArrivalTime.Format("15:04"),
		}

		if leg.Type == tdf.JourneyLegTypeTransit {
			step.Instruction = fmt.Sprintf("Take %s from %s to %s", leg.RouteName, leg.OriginName, leg.DestinationName)
			step.LineName = leg.RouteName
			step.LineColour = leg.RouteColour
			step.VehicleType = "TRANSIT"
			step.DelaySeconds = leg.DelaySeconds
		} else {
			step.Instruction = fmt.Sprintf("Walk from %s to %s", leg.OriginName, leg.DestinationName)
		}

		option.Steps = append(option.Steps, step)
	}

	return option
}

func (s *TransitSource) directionsFallback(ctx context.Context, request *tdf.RouteRequest) (*tdf.TransportOption, error) {
	result, err := s.Directions.Route(ctx, "transit", request.Origin(), request.Destination())
	if err != nil {
		return nil, err
	}

	option := &tdf.TransportOption{
		Mode:                tdf.TransportModeTransit,
		TotalDistanceMeters: result.DistanceMeters,
		TotalDuration:       result.Duration,
		Provider:            tdf.ProviderGoogleDirections,
		IsRealistic:         true,
	}

	transitSteps := 0

	for _, step := range result.Steps {
		optionStep := tdf.TransportOptionStep{
			Instruction:     step.Instruction,
			DistanceMeters:  step.DistanceMeters,
			Duration:        step.Duration,
			EncodedPolyline: step.EncodedPolyline,
			LineName:        step.LineName,
			LineColour:      step.LineColour,
			VehicleType:     step.VehicleType,
			NumStops:        step.NumStops,
			DepartureText:   step.DepartureText,
			ArrivalText:     step.ArrivalText,
		}

		if step.LineName != "" {
			transitSteps += 1
		}

		option.Steps = append(option.Steps, optionStep)
	}

	// Rough fare from the external itinerary shape
	if transitSteps > 0 {
		cost := float64(transitSteps)*transitBaseFarePerLeg + result.DistanceMeters/1000*transitFarePerKm
		if cost < transitMinimumFare {
			cost = transitMinimumFare
		}
		option.EstimatedCostUSD = cost
	}

	return option, nil
}
