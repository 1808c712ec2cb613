package realtime

import (
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// DecodeVehiclePositions parses a GTFS-RT feed payload into vehicle update
// records. Entities without a position are skipped.
func DecodeVehiclePositions(payload []byte) ([]VehicleUpdate, error) {
	feed := gtfs.FeedMessage{}
	err := proto.Unmarshal(payload, &feed)
	if err != nil {
		return nil, err
	}

	var updates []VehicleUpdate

	for _, entity := range feed.Entity {
		vehiclePosition := entity.GetVehicle()
		if vehiclePosition == nil || vehiclePosition.Position == nil {
			continue
		}

		recordedAt := time.Now()
		if vehiclePosition.Timestamp != nil {
			recordedAt = time.Unix(int64(vehiclePosition.GetTimestamp()), 0)
		}

		update := VehicleUpdate{
			VehicleID:  vehiclePosition.GetVehicle().GetId(),
			TripID:     vehiclePosition.GetTrip().GetTripId(),
			RouteID:    vehiclePosition.GetTrip().GetRouteId(),
			Latitude:   float64(vehiclePosition.Position.GetLatitude()),
			Longitude:  float64(vehiclePosition.Position.GetLongitude()),
			RecordedAt: recordedAt,
		}

		if vehiclePosition.Position.Bearing != nil {
			bearing := float64(vehiclePosition.Position.GetBearing())
			update.Bearing = &bearing
		}

		if vehiclePosition.Position.Speed != nil {
			speed := float64(vehiclePosition.Position.GetSpeed())
			update.SpeedMetersSec = &speed
		}

		if vehiclePosition.CurrentStopSequence != nil {
			stopSequence := int(vehiclePosition.GetCurrentStopSequence())
			update.StopSequence = &stopSequence
		}

		if vehiclePosition.CurrentStatus != nil {
			currentStatus := vehiclePosition.GetCurrentStatus().String()
			update.CurrentStatus = &currentStatus
		}

		if vehiclePosition.OccupancyStatus != nil {
			occupancy := vehiclePosition.GetOccupancyStatus().String()
			update.OccupancyStatus = &occupancy
		}

		updates = append(updates, update)
	}

	return updates, nil
}

// DecodeTripUpdates parses a GTFS-RT feed payload into trip update records.
func DecodeTripUpdates(payload []byte) ([]TripUpdate, error) {
	feed := gtfs.FeedMessage{}
	err := proto.Unmarshal(payload, &feed)
	if err != nil {
		return nil, err
	}

	var updates []TripUpdate

	for _, entity := range feed.Entity {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil || tripUpdate.GetTrip().GetTripId() == "" {
			continue
		}

		recordedAt := time.Now()
		if tripUpdate.Timestamp != nil {
			recordedAt = time.Unix(int64(tripUpdate.GetTimestamp()), 0)
		}

		update := TripUpdate{
			TripID:     tripUpdate.GetTrip().GetTripId(),
			RouteID:    tripUpdate.GetTrip().GetRouteId(),
			RecordedAt: recordedAt,
		}

		for _, stopTimeUpdate := range tripUpdate.GetStopTimeUpdate() {
			update.StopDeltas = append(update.StopDeltas, StopTimeDelta{
				StopID:                stopTimeUpdate.GetStopId(),
				StopSequence:          int(stopTimeUpdate.GetStopSequence()),
				ArrivalDelaySeconds:   int(stopTimeUpdate.GetArrival().GetDelay()),
				DepartureDelaySeconds: int(stopTimeUpdate.GetDeparture().GetDelay()),
			})
		}

		updates = append(updates, update)
	}

	return updates, nil
}
