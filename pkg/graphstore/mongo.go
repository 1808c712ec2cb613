package graphstore

import (
	"context"
	"time"

	"github.com/wayfarer/wayfarer/pkg/database"
	"github.com/wayfarer/wayfarer/pkg/tdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxConnectionsPerStop = 50

// MongoSource answers graph queries from the stops / stop_times / calendars
// collections.
type MongoSource struct {
}

func (s MongoSource) FindNearbyStops(ctx context.Context, location *tdf.Location, radiusMeters float64, count int) ([]*tdf.Stop, error) {
	stopsCollection := database.GetCollection("stops")

	// $nearSphere returns nearest-first
	query := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": bson.A{location.Longitude(), location.Latitude()},
				},
				"$maxDistance": radiusMeters,
			},
		},
	}

	cursor, err := stopsCollection.Find(ctx, query, options.Find().SetLimit(int64(count)))
	if err != nil {
		return nil, err
	}

	var stops []*tdf.Stop
	if err := cursor.All(ctx, &stops); err != nil {
		return nil, err
	}

	return stops, nil
}

func (s MongoSource) GetConnectionsFromStop(ctx context.Context, stopID string, afterTime time.Time) ([]*tdf.Connection, error) {
	stopTimesCollection := database.GetCollection("stop_times")

	activeServices, err := s.activeServiceIDs(ctx, afterTime)
	if err != nil {
		return nil, err
	}

	query := bson.M{
		"fromstopid":    stopID,
		"departuretime": bson.M{"$gte": afterTime},
	}
	// No calendar data means no service filtering, not no service
	if len(activeServices) > 0 {
		query["serviceid"] = bson.M{"$in": activeServices}
	}

	cursor, err := stopTimesCollection.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "departuretime", Value: 1}}).SetLimit(maxConnectionsPerStop))
	if err != nil {
		return nil, err
	}

	var connections []*tdf.Connection
	if err := cursor.All(ctx, &connections); err != nil {
		return nil, err
	}

	return connections, nil
}

func (s MongoSource) GetStopInfo(ctx context.Context, stopID string) (*tdf.Stop, error) {
	stopsCollection := database.GetCollection("stops")

	var stop *tdf.Stop
	stopsCollection.FindOne(ctx, bson.M{"primaryidentifier": stopID}).Decode(&stop)

	if stop == nil {
		return nil, tdf.ErrNoRouteFound
	}

	return stop, nil
}

// activeServiceIDs resolves serviceids running on the weekday of the search
// instant. A multi-day search is out of scope so only that weekday matters.
func (s MongoSource) activeServiceIDs(ctx context.Context, at time.Time) ([]string, error) {
	calendarsCollection := database.GetCollection("calendars")

	weekday := weekdayField(at.Weekday())

	cursor, err := calendarsCollection.Find(ctx, bson.M{weekday: true})
	if err != nil {
		return nil, err
	}

	var calendars []struct {
		ServiceID string `bson:"serviceid"`
	}
	if err := cursor.All(ctx, &calendars); err != nil {
		return nil, err
	}

	serviceIDs := make([]string, 0, len(calendars))
	for _, calendar := range calendars {
		serviceIDs = append(serviceIDs, calendar.ServiceID)
	}

	return serviceIDs, nil
}

func weekdayField(day time.Weekday) string {
	switch day {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
