package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/wayfarer/wayfarer/pkg/tdf"
)

// reconstructJourney walks backwards through the predecessor connections
// recorded per stop, producing the full multi-hop chain, then wraps it in
// the access and egress walk legs.
func (p *Planner) reconstructJourney(ctx context.Context, request *tdf.RouteRequest, departureTime time.Time, labels map[string]stopLabel, bestStopID string, bestLabel stopLabel, originCandidates []candidateStop, egress candidateStop) (*tdf.Journey, error) {
	var chain []*tdf.Connection

	visited := map[string]bool{}
	currentStopID := bestStopID

	for {
		label, ok := labels[currentStopID]
		if !ok || label.connection == nil {
			break
		}
		if visited[currentStopID] {
			// Labels are only ever replaced by strictly earlier arrivals so
			// the chain cannot cycle, but a corrupt graph should not hang us.
			return nil, tdf.ErrNoRouteFound
		}
		visited[currentStopID] = true

		chain = append([]*tdf.Connection{label.connection}, chain...)
		currentStopID = label.connection.FromStopID
	}

	if len(chain) == 0 {
		return nil, tdf.ErrNoRouteFound
	}

	boardStopID := chain[0].FromStopID

	var accessWalk float64
	for _, candidate := range originCandidates {
		if candidate.stop.PrimaryIdentifier == boardStopID {
			accessWalk = candidate.walkDistance
			break
		}
	}

	journey := &tdf.Journey{
		DepartureTime: departureTime,
		Transfers:     bestLabel.round,
	}

	boardStop := p.stopInfo(ctx, boardStopID)

	// Access walk from the true origin to the first transit stop
	journey.Legs = append(journey.Legs, tdf.JourneyLeg{
		Type:                tdf.JourneyLegTypeWalk,
		OriginName:          "Origin",
		DestinationName:     boardStop.PrimaryName,
		OriginLocation:      request.Origin(),
		DestinationLocation: boardStop.Location,
		DepartureTime:       departureTime,
		ArrivalTime:         departureTime.Add(walkDuration(accessWalk)),
		DistanceMeters:      accessWalk,
	})

	journey.Legs = append(journey.Legs, p.transitLegs(ctx, chain)...)

	// Egress walk from the last transit stop to the true destination
	alightStop := p.stopInfo(ctx, bestStopID)
	egressDeparture := bestLabel.arrival
	egressArrival := egressDeparture.Add(walkDuration(egress.walkDistance))

	journey.Legs = append(journey.Legs, tdf.JourneyLeg{
		Type:                tdf.JourneyLegTypeWalk,
		OriginName:          alightStop.PrimaryName,
		DestinationName:     "Destination",
		OriginLocation:      alightStop.Location,
		DestinationLocation: request.Destination(),
		DepartureTime:       egressDeparture,
		ArrivalTime:         egressArrival,
		DistanceMeters:      egress.walkDistance,
	})

	journey.ArrivalTime = egressArrival
	journey.TotalDuration = egressArrival.Sub(departureTime)

	for _, leg := range journey.Legs {
		journey.TotalDistanceMeters += leg.DistanceMeters
	}

	return journey, nil
}

// transitLegs merges contiguous same-trip hops in the connection chain into
// single ride legs.
func (p *Planner) transitLegs(ctx context.Context, chain []*tdf.Connection) []tdf.JourneyLeg {
	var legs []tdf.JourneyLeg

	for i := 0; i < len(chain); {
		board := chain[i]

		j := i
		for j+1 < len(chain) && chain[j+1].TripID == board.TripID {
			j++
		}
		alight := chain[j]

		boardStop := p.stopInfo(ctx, board.FromStopID)
		alightStop := p.stopInfo(ctx, alight.ToStopID)

		var distance float64
		if boardStop.Location != nil && alightStop.Location != nil {
			distance = boardStop.Location.Distance(alightStop.Location)
		}

		legs = append(legs, tdf.JourneyLeg{
			Type:                tdf.JourneyLegTypeTransit,
			OriginName:          boardStop.PrimaryName,
			DestinationName:     alightStop.PrimaryName,
			OriginLocation:      boardStop.Location,
			DestinationLocation: alightStop.Location,
			DepartureTime:       board.DepartureTime,
			ArrivalTime:         alight.ArrivalTime,
			DistanceMeters:      distance,
			TripID:              board.TripID,
			RouteID:             board.RouteID,
			RouteName:           board.RouteName,
			RouteColour:         board.RouteColour,
		})

		i = j + 1
	}

	return legs
}

// stopInfo never fails the reconstruction - an unknown stop degrades to a
// placeholder record.
func (p *Planner) stopInfo(ctx context.Context, stopID string) *tdf.Stop {
	stop, err := p.Store.GetStopInfo(ctx, stopID)
	if err != nil || stop == nil {
		return &tdf.Stop{
			PrimaryIdentifier: stopID,
			PrimaryName:       fmt.Sprintf("Stop %s", stopID),
		}
	}

	return stop
}
