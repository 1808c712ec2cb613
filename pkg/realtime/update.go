package realtime

import "time"

// VehicleUpdate is one decoded vehicle position record. Optional upstream
// fields are resolved at the decode boundary, never deep inside lookups.
type VehicleUpdate struct {
	VehicleID string `bson:"vehicleid" json:"vehicleid"`
	TripID    string `bson:"tripid" json:"tripid"`
	RouteID   string `bson:"routeid" json:"routeid"`

	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`

	Bearing         *float64 `bson:"bearing,omitempty" json:"bearing,omitempty"`
	SpeedMetersSec  *float64 `bson:"speed,omitempty" json:"speed,omitempty"`
	StopSequence    *int     `bson:"stopsequence,omitempty" json:"stopsequence,omitempty"`
	CurrentStatus   *string  `bson:"currentstatus,omitempty" json:"currentstatus,omitempty"`
	OccupancyStatus *string  `bson:"occupancystatus,omitempty" json:"occupancystatus,omitempty"`

	RecordedAt time.Time `bson:"recordedat" json:"recordedat"`
}

// TripUpdate is one decoded trip update record with its ordered per-stop
// delay deltas.
type TripUpdate struct {
	TripID  string `bson:"tripid" json:"tripid"`
	RouteID string `bson:"routeid" json:"routeid"`

	StopDeltas []StopTimeDelta `bson:"stopdeltas" json:"stopdeltas"`

	RecordedAt time.Time `bson:"recordedat" json:"recordedat"`
}

type StopTimeDelta struct {
	StopID       string `bson:"stopid" json:"stopid"`
	StopSequence int    `bson:"stopsequence" json:"stopsequence"`

	ArrivalDelaySeconds   int `bson:"arrivaldelay" json:"arrivaldelay"`
	DepartureDelaySeconds int `bson:"departuredelay" json:"departuredelay"`
}
