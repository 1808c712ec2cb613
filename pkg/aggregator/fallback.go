package aggregator

import (
	"fmt"
	"time"

	"github.com/wayfarer/wayfarer/pkg/tdf"
)

const (
	fallbackWalkingMaxMeters = 5_000
	fallbackCyclingMaxMeters = 30_000
	fallbackDrivingMaxMeters = 2_000_000

	fallbackWalkingSpeed = 1.4  // m/s
	fallbackCyclingSpeed = 4.2  // m/s, ~15 km/h
	fallbackDrivingSpeed = 16.7 // m/s, ~60 km/h
)

// fallbackOption synthesizes a low-confidence estimate from straight-line
// distance. It is the one option that never depends on an external system,
// so the caller always gets an answer.
func (a *Aggregator) fallbackOption(request *tdf.RouteRequest) tdf.TransportOption {
	distance := request.Origin().Distance(request.Destination())

	var mode tdf.TransportMode
	var speed float64

	// Cheapest physically realistic mode for the distance
	switch {
	case distance <= fallbackWalkingMaxMeters:
		mode = tdf.TransportModeWalking
		speed = fallbackWalkingSpeed
	case distance <= fallbackCyclingMaxMeters:
		mode = tdf.TransportModeCycling
		speed = fallbackCyclingSpeed
	default:
		mode = tdf.TransportModeDriving
		speed = fallbackDrivingSpeed
	}

	duration := time.Duration(distance / speed * float64(time.Second))

	cost := 0.0
	if mode == tdf.TransportModeDriving {
		cost = EstimateDrivingCost(distance)
	}

	option := tdf.TransportOption{
		Mode:                mode,
		TotalDistanceMeters: distance,
		TotalDuration:       duration,
		EstimatedCostUSD:    cost,
		Provider:            tdf.ProviderHaversineFallback,
		IsRealistic:         true,
		Steps: []tdf.TransportOptionStep{
			{
				Instruction:    fmt.Sprintf("Straight-line estimate over %.1f km", distance/1000),
				DistanceMeters: distance,
				Duration:       duration,
			},
		},
	}

	if distance > fallbackDrivingMaxMeters {
		option.MarkUnrealistic(fmt.Sprintf(
			"Distance of %.0f km is implausible for a single-day %s trip. Treat this estimate as indicative only.",
			distance/1000, mode,
		))
	}

	return option
}
