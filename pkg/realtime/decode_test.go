package realtime

import (
	"testing"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func TestDecodeVehiclePositions(t *testing.T) {
	timestamp := uint64(1767261600)

	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
		},
		Entity: []*gtfs.FeedEntity{
			{
				Id: proto.String("1"),
				Vehicle: &gtfs.VehiclePosition{
					Trip: &gtfs.TripDescriptor{
						TripId:  proto.String("trip-1"),
						RouteId: proto.String("route-1"),
					},
					Vehicle: &gtfs.VehicleDescriptor{
						Id: proto.String("bus-1"),
					},
					Position: &gtfs.Position{
						Latitude:  proto.Float32(51.5),
						Longitude: proto.Float32(-0.12),
						Bearing:   proto.Float32(90),
					},
					Timestamp: &timestamp,
				},
			},
			{
				// No position, skipped
				Id: proto.String("2"),
				Vehicle: &gtfs.VehiclePosition{
					Trip: &gtfs.TripDescriptor{TripId: proto.String("trip-2")},
				},
			},
		},
	}

	payload, err := proto.Marshal(feed)
	if err != nil {
		t.Fatalf("failed to marshal test feed: %v", err)
	}

	updates, err := DecodeVehiclePositions(payload)
	if err != nil {
		t.Fatalf("DecodeVehiclePositions returned error: %v", err)
	}

	if len(updates) != 1 {
		t.Fatalf("len(updates) = %d, want 1", len(updates))
	}

	update := updates[0]
	if update.VehicleID != "bus-1" {
		t.Errorf("VehicleID = %s, want bus-1", update.VehicleID)
	}
	if update.TripID != "trip-1" {
		t.Errorf("TripID = %s, want trip-1", update.TripID)
	}
	if update.Latitude < 51.49 || update.Latitude > 51.51 {
		t.Errorf("Latitude = %f, want 51.5", update.Latitude)
	}
	if update.Bearing == nil || *update.Bearing != 90 {
		t.Errorf("Bearing = %v, want 90", update.Bearing)
	}
	if update.SpeedMetersSec != nil {
		t.Errorf("SpeedMetersSec = %v, want nil for feed without speed", update.SpeedMetersSec)
	}
	if update.RecordedAt.Unix() != int64(timestamp) {
		t.Errorf("RecordedAt = %d, want %d", update.RecordedAt.Unix(), timestamp)
	}
}

func TestDecodeTripUpdates(t *testing.T) {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
		},
		Entity: []*gtfs.FeedEntity{
			{
				Id: proto.String("1"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{
						TripId:  proto.String("trip-1"),
						RouteId: proto.String("route-1"),
					},
					StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
						{
							StopId:       proto.String("stop-a"),
							StopSequence: proto.Uint32(1),
							Departure: &gtfs.TripUpdate_StopTimeEvent{
								Delay: proto.Int32(120),
							},
						},
						{
							StopId:       proto.String("stop-b"),
							StopSequence: proto.Uint32(2),
							Arrival: &gtfs.TripUpdate_StopTimeEvent{
								Delay: proto.Int32(60),
							},
						},
					},
				},
			},
			{
				// No trip id, skipped
				Id: proto.String("2"),
				TripUpdate: &gtfs.TripUpdate{
					Trip: &gtfs.TripDescriptor{},
				},
			},
		},
	}

	payload, err := proto.Marshal(feed)
	if err != nil {
		t.Fatalf("failed to marshal test feed: %v", err)
	}

	updates, err := DecodeTripUpdates(payload)
	if err != nil {
		t.Fatalf("DecodeTripUpdates returned error: %v", err)
	}

	if len(updates) != 1 {
		t.Fatalf("len(updates) = %d, want 1", len(updates))
	}

	update := updates[0]
	if update.TripID != "trip-1" {
		t.Errorf("TripID = %s, want trip-1", update.TripID)
	}
	if len(update.StopDeltas) != 2 {
		t.Fatalf("len(StopDeltas) = %d, want 2", len(update.StopDeltas))
	}
	if update.StopDeltas[0].DepartureDelaySeconds != 120 {
		t.Errorf("stop-a departure delay = %d, want 120", update.StopDeltas[0].DepartureDelaySeconds)
	}
	if update.StopDeltas[1].ArrivalDelaySeconds != 60 {
		t.Errorf("stop-b arrival delay = %d, want 60", update.StopDeltas[1].ArrivalDelaySeconds)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeVehiclePositions([]byte("not a protobuf"))
	if err == nil {
		t.Error("expected error decoding garbage vehicle positions payload")
	}
}
