package tdf

import "time"

type JourneyLegType string

const (
	JourneyLegTypeWalk    JourneyLegType = "Walk"
	JourneyLegTypeTransit JourneyLegType = "Transit"
)

type JourneyLeg struct {
	Type JourneyLegType `groups:"basic"`

	OriginName      string `groups:"basic"`
	DestinationName string `groups:"basic"`

	OriginLocation      *Location `groups:"basic"`
	DestinationLocation *Location `groups:"basic"`

	DepartureTime time.Time `groups:"basic"`
	ArrivalTime   time.Time `groups:"basic"`

	DistanceMeters float64 `groups:"basic"`

	// Transit legs only
	TripID       string `groups:"basic"`
	RouteID      string `groups:"basic"`
	RouteName    string `groups:"basic"`
	RouteColour  string `groups:"basic"`
	DelaySeconds int    `groups:"basic"`
}

// Journey is a single transit itinerary produced by the planner.
// Legs are contiguous: each leg departs where the previous one arrived.
type Journey struct {
	Legs []JourneyLeg `groups:"basic"`

	DepartureTime time.Time `groups:"basic"`
	ArrivalTime   time.Time `groups:"basic"`

	TotalDistanceMeters float64       `groups:"basic"`
	TotalDuration       time.Duration `groups:"basic"`

	Transfers int `groups:"basic"`
}
