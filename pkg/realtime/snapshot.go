package realtime

import (
	"sync/atomic"
	"time"

	"github.com/wayfarer/wayfarer/pkg/util"
)

const (
	// VehiclePositionMaxAge is how old a vehicle position may be before it
	// is dropped from a published snapshot.
	VehiclePositionMaxAge = 5 * time.Minute

	// TripUpdateMaxAge is how old a trip update may be before it is dropped
	// from a published snapshot.
	TripUpdateMaxAge = 1 * time.Hour

	// DelayFreshnessWindow bounds how old a trip update may be for delay
	// lookups. Anything older reads as "no data", never as an error.
	DelayFreshnessWindow = 10 * time.Minute
)

type VehiclePositionsView struct {
	Positions  map[string]VehicleUpdate
	RecordedAt time.Time
}

type TripUpdatesView struct {
	Updates    map[string]TripUpdate
	RecordedAt time.Time
}

// SnapshotStore holds the process-wide realtime state. Each view is replaced
// wholesale by the single poller writer and read lock-free by any number of
// in-flight requests, which always observe a complete generation.
type SnapshotStore struct {
	vehiclePositions atomic.Pointer[VehiclePositionsView]
	tripUpdates      atomic.Pointer[TripUpdatesView]
}

func NewSnapshotStore() *SnapshotStore {
	store := &SnapshotStore{}
	store.vehiclePositions.Store(&VehiclePositionsView{Positions: map[string]VehicleUpdate{}})
	store.tripUpdates.Store(&TripUpdatesView{Updates: map[string]TripUpdate{}})
	return store
}

// ReplaceVehiclePositions atomically supersedes the previous generation.
// Records past their freshness window are discarded before publishing.
func (s *SnapshotStore) ReplaceVehiclePositions(updates []VehicleUpdate, now time.Time) {
	util.InPlaceFilter(&updates, func(update VehicleUpdate) bool {
		return now.Sub(update.RecordedAt) <= VehiclePositionMaxAge
	})

	view := &VehiclePositionsView{
		Positions:  make(map[string]VehicleUpdate, len(updates)),
		RecordedAt: now,
	}
	for _, update := range updates {
		key := update.VehicleID
		if key == "" {
			key = update.TripID
		}
		view.Positions[key] = update
	}

	s.vehiclePositions.Store(view)
}

// ReplaceTripUpdates atomically supersedes the previous generation.
func (s *SnapshotStore) ReplaceTripUpdates(updates []TripUpdate, now time.Time) {
	util.InPlaceFilter(&updates, func(update TripUpdate) bool {
		return now.Sub(update.RecordedAt) <= TripUpdateMaxAge
	})

	view := &TripUpdatesView{
		Updates:    make(map[string]TripUpdate, len(updates)),
		RecordedAt: now,
	}
	for _, update := range updates {
		view.Updates[update.TripID] = update
	}

	s.tripUpdates.Store(view)
}

func (s *SnapshotStore) VehiclePositions() *VehiclePositionsView {
	return s.vehiclePositions.Load()
}

func (s *SnapshotStore) TripUpdates() *TripUpdatesView {
	return s.tripUpdates.Load()
}

// GetTripDelays returns the per-stop departure delays for a trip, sourced
// only from updates refreshed within the freshness window. An absent or
// stale trip reads as an empty map.
func (s *SnapshotStore) GetTripDelays(tripID string) map[string]int {
	return s.getTripDelaysAt(tripID, time.Now())
}

func (s *SnapshotStore) getTripDelaysAt(tripID string, now time.Time) map[string]int {
	delays := map[string]int{}

	view := s.tripUpdates.Load()

	update, ok := view.Updates[tripID]
	if !ok {
		return delays
	}

	if now.Sub(update.RecordedAt) > DelayFreshnessWindow {
		return delays
	}

	for _, delta := range update.StopDeltas {
		delays[delta.StopID] = delta.DepartureDelaySeconds
	}

	return delays
}

// GetTripDelay returns the single most relevant delay for a trip - the
// largest onward departure delay - for leg-level enrichment.
func (s *SnapshotStore) GetTripDelay(tripID string) int {
	delay := 0
	for _, stopDelay := range s.GetTripDelays(tripID) {
		if stopDelay > delay {
			delay = stopDelay
		}
	}

	return delay
}
