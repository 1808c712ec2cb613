package tdf

import "time"

// Connection is a single board->alight hop on one trip, derived per-query
// from the graph store for a stop and a "depart after" instant.
type Connection struct {
	TripID  string `groups:"basic"`
	RouteID string `groups:"basic"`

	RouteName   string `groups:"basic"`
	RouteColour string `groups:"basic"`

	FromStopID string `groups:"basic"`
	ToStopID   string `groups:"basic"`

	DepartureTime time.Time `groups:"basic"`
	ArrivalTime   time.Time `groups:"basic"`

	StopSequence int `groups:"internal"`
}
