package realtime

import (
	"testing"
	"time"
)

var snapshotNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func TestReplaceVehiclePositionsDropsStaleRecords(t *testing.T) {
	store := NewSnapshotStore()

	store.ReplaceVehiclePositions([]VehicleUpdate{
		{VehicleID: "bus-1", TripID: "trip-1", RecordedAt: snapshotNow.Add(-1 * time.Minute)},
		{VehicleID: "bus-2", TripID: "trip-2", RecordedAt: snapshotNow.Add(-6 * time.Minute)},
	}, snapshotNow)

	view := store.VehiclePositions()

	if _, ok := view.Positions["bus-1"]; !ok {
		t.Error("fresh vehicle bus-1 missing from snapshot")
	}
	if _, ok := view.Positions["bus-2"]; ok {
		t.Error("vehicle bus-2 is 6 minutes old and should have been dropped")
	}
}

func TestReplaceVehiclePositionsSupersedesPreviousGeneration(t *testing.T) {
	store := NewSnapshotStore()

	store.ReplaceVehiclePositions([]VehicleUpdate{
		{VehicleID: "bus-1", TripID: "trip-1", RecordedAt: snapshotNow},
	}, snapshotNow)

	later := snapshotNow.Add(30 * time.Second)
	store.ReplaceVehiclePositions([]VehicleUpdate{
		{VehicleID: "bus-2", TripID: "trip-2", RecordedAt: later},
	}, later)

	view := store.VehiclePositions()

	if len(view.Positions) != 1 {
		t.Fatalf("len(Positions) = %d, want 1", len(view.Positions))
	}
	if _, ok := view.Positions["bus-2"]; !ok {
		t.Error("latest generation should only contain bus-2")
	}
}

func TestReplaceVehiclePositionsIsIdempotent(t *testing.T) {
	store := NewSnapshotStore()

	updates := func() []VehicleUpdate {
		return []VehicleUpdate{
			{VehicleID: "bus-1", TripID: "trip-1", Latitude: 51.5, RecordedAt: snapshotNow},
			{VehicleID: "bus-2", TripID: "trip-2", Latitude: 51.6, RecordedAt: snapshotNow},
		}
	}

	store.ReplaceVehiclePositions(updates(), snapshotNow)
	store.ReplaceVehiclePositions(updates(), snapshotNow)

	view := store.VehiclePositions()

	if len(view.Positions) != 2 {
		t.Fatalf("len(Positions) = %d after repeated identical polls, want 2", len(view.Positions))
	}
	if view.Positions["bus-1"].Latitude != 51.5 {
		t.Errorf("bus-1 latitude = %f, want 51.5", view.Positions["bus-1"].Latitude)
	}
}

func TestReplaceVehiclePositionsKeysByTripWhenVehicleMissing(t *testing.T) {
	store := NewSnapshotStore()

	store.ReplaceVehiclePositions([]VehicleUpdate{
		{TripID: "trip-1", RecordedAt: snapshotNow},
	}, snapshotNow)

	if _, ok := store.VehiclePositions().Positions["trip-1"]; !ok {
		t.Error("update without a vehicle id should be keyed by trip id")
	}
}

func TestGetTripDelays(t *testing.T) {
	tests := []struct {
		name       string
		recordedAt time.Time
		tripID     string
		want       map[string]int
	}{
		{
			name:       "fresh update",
			recordedAt: snapshotNow.Add(-2 * time.Minute),
			tripID:     "trip-1",
			want:       map[string]int{"stop-a": 60, "stop-b": 120},
		},
		{
			name:       "update past the freshness window",
			recordedAt: snapshotNow.Add(-11 * time.Minute),
			tripID:     "trip-1",
			want:       map[string]int{},
		},
		{
			name:       "unknown trip",
			recordedAt: snapshotNow,
			tripID:     "trip-999",
			want:       map[string]int{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := NewSnapshotStore()
			store.ReplaceTripUpdates([]TripUpdate{
				{
					TripID: "trip-1",
					StopDeltas: []StopTimeDelta{
						{StopID: "stop-a", StopSequence: 1, DepartureDelaySeconds: 60},
						{StopID: "stop-b", StopSequence: 2, DepartureDelaySeconds: 120},
					},
					RecordedAt: test.recordedAt,
				},
			}, snapshotNow)

			got := store.getTripDelaysAt(test.tripID, snapshotNow)

			if len(got) != len(test.want) {
				t.Fatalf("got %d delays, want %d", len(got), len(test.want))
			}
			for stopID, delay := range test.want {
				if got[stopID] != delay {
					t.Errorf("delay[%s] = %d, want %d", stopID, got[stopID], delay)
				}
			}
		})
	}
}

func TestGetTripDelayReturnsLargestOnwardDelay(t *testing.T) {
	store := NewSnapshotStore()
	store.ReplaceTripUpdates([]TripUpdate{
		{
			TripID: "trip-1",
			StopDeltas: []StopTimeDelta{
				{StopID: "stop-a", StopSequence: 1, DepartureDelaySeconds: 30},
				{StopID: "stop-b", StopSequence: 2, DepartureDelaySeconds: 180},
				{StopID: "stop-c", StopSequence: 3, DepartureDelaySeconds: 90},
			},
			RecordedAt: time.Now(),
		},
	}, time.Now())

	if delay := store.GetTripDelay("trip-1"); delay != 180 {
		t.Errorf("GetTripDelay = %d, want 180", delay)
	}

	if delay := store.GetTripDelay("trip-999"); delay != 0 {
		t.Errorf("GetTripDelay for unknown trip = %d, want 0", delay)
	}
}

func TestEmptyStoreReadsAsNoData(t *testing.T) {
	store := NewSnapshotStore()

	if view := store.VehiclePositions(); view == nil || len(view.Positions) != 0 {
		t.Error("empty store should expose an empty vehicle positions view")
	}
	if delays := store.GetTripDelays("trip-1"); len(delays) != 0 {
		t.Errorf("got %d delays from empty store, want 0", len(delays))
	}
}
