package planner

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wayfarer/wayfarer/pkg/graphstore"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

const (
	// WalkingSpeedMetersPerSecond is the assumed pace for the access and
	// egress walk legs.
	WalkingSpeedMetersPerSecond = 1.4

	maxCandidateStops = 10
)

// Planner runs a round-based earliest-arrival search (RAPTOR) over the
// transit graph. One instance serves many concurrent requests; all search
// state is per-call.
type Planner struct {
	Store graphstore.GraphStore
}

// stopLabel records the best known arrival at a stop, the round that
// produced it, and the connection ridden to get there. Origin stops carry a
// nil connection.
type stopLabel struct {
	arrival    time.Time
	round      int
	connection *tdf.Connection
}

type candidateStop struct {
	stop         *tdf.Stop
	walkDistance float64
}

// FindRoute returns the earliest-arrival transit journey for the request, or
// tdf.ErrNoRouteFound when no origin/destination stop is within walking
// range or no itinerary exists within the transfer budget.
func (p *Planner) FindRoute(ctx context.Context, request *tdf.RouteRequest) (*tdf.Journey, error) {
	departureTime := request.DepartureTime
	if departureTime.IsZero() {
		departureTime = time.Now()
	}

	originCandidates, err := p.nearbyCandidates(ctx, request.Origin(), request.MaxWalkDistanceMeters)
	if err != nil || len(originCandidates) == 0 {
		return nil, tdf.ErrNoRouteFound
	}

	destinationCandidates, err := p.nearbyCandidates(ctx, request.Destination(), request.MaxWalkDistanceMeters)
	if err != nil || len(destinationCandidates) == 0 {
		return nil, tdf.ErrNoRouteFound
	}

	destinationSet := map[string]candidateStop{}
	for _, candidate := range destinationCandidates {
		destinationSet[candidate.stop.PrimaryIdentifier] = candidate
	}

	labels := map[string]stopLabel{}
	var frontier []string

	for _, candidate := range originCandidates {
		walkDuration := walkDuration(candidate.walkDistance)

		labels[candidate.stop.PrimaryIdentifier] = stopLabel{
			arrival: departureTime.Add(walkDuration),
			round:   0,
		}
		frontier = append(frontier, candidate.stop.PrimaryIdentifier)
	}

	var bestStopID string
	var bestLabel stopLabel

	for round := 0; round <= request.MaxTransfers; round++ {
		// Iteration order within a round does not affect the result, but a
		// fixed order keeps searches reproducible.
		sort.Strings(frontier)

		var nextFrontier []string

		for _, stopID := range frontier {
			stopArrival := labels[stopID].arrival

			connections, err := p.Store.GetConnectionsFromStop(ctx, stopID, stopArrival)
			if err != nil {
				// Treated as no connections from this stop this round. The
				// rest of the sweep carries on.
				log.Error().Err(err).Str("stop", stopID).Int("round", round).Msg("Failed to get connections")
				continue
			}

			for _, connection := range connections {
				existing, seen := labels[connection.ToStopID]

				// Monotonic relaxation: a stop's earliest arrival only ever
				// decreases over the whole search.
				if seen && !connection.ArrivalTime.Before(existing.arrival) {
					continue
				}

				label := stopLabel{
					arrival:    connection.ArrivalTime,
					round:      round,
					connection: connection,
				}
				labels[connection.ToStopID] = label
				nextFrontier = append(nextFrontier, connection.ToStopID)

				if _, isDestination := destinationSet[connection.ToStopID]; isDestination {
					if bestStopID == "" || betterArrival(label, connection.ToStopID, bestLabel, bestStopID) {
						bestStopID = connection.ToStopID
						bestLabel = label
					}
				}
			}
		}

		if len(nextFrontier) == 0 {
			break
		}
		frontier = nextFrontier
	}

	if bestStopID == "" {
		return nil, tdf.ErrNoRouteFound
	}

	return p.reconstructJourney(ctx, request, departureTime, labels, bestStopID, bestLabel, originCandidates, destinationSet[bestStopID])
}

// betterArrival is the deterministic destination tie-break: earlier arrival,
// then fewer rounds, then lexicographic stop identifier.
func betterArrival(a stopLabel, aStopID string, b stopLabel, bStopID string) bool {
	if !a.arrival.Equal(b.arrival) {
		return a.arrival.Before(b.arrival)
	}
	if a.round != b.round {
		return a.round < b.round
	}
	return aStopID < bStopID
}

func (p *Planner) nearbyCandidates(ctx context.Context, location *tdf.Location, radiusMeters float64) ([]candidateStop, error) {
	stops, err := p.Store.FindNearbyStops(ctx, location, radiusMeters, maxCandidateStops)
	if err != nil {
		return nil, err
	}

	var candidates []candidateStop
	for _, stop := range stops {
		if stop.Location == nil {
			continue
		}

		candidates = append(candidates, candidateStop{
			stop:         stop,
			walkDistance: location.Distance(stop.Location),
		})
	}

	return candidates, nil
}

func walkDuration(distanceMeters float64) time.Duration {
	return time.Duration(distanceMeters / WalkingSpeedMetersPerSecond * float64(time.Second))
}
