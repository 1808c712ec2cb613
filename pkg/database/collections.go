package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createGraphIndexes()
	createRealtimeIndexes()
}

func createGraphIndexes() {
	// Stops
	stopsCollection := GetCollection("stops")
	stopsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stopsCollection.Indexes().CreateMany(context.Background(), stopsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Stop Times
	stopTimesCollection := GetCollection("stop_times")
	stopTimesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "fromstopid", Value: 1},
				{Key: "departuretime", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "tripid", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = stopTimesCollection.Indexes().CreateMany(context.Background(), stopTimesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Service Calendars
	calendarsCollection := GetCollection("calendars")
	_, err = calendarsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "serviceid", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createRealtimeIndexes() {
	// Vehicle Positions
	vehiclePositionsCollection := GetCollection("vehicle_positions")
	_, err := vehiclePositionsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tripid", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "recordedat", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(5 * 60), // Expire after 5 minutes
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Vehicle Events archive
	vehicleEventsCollection := GetCollection("vehicle_events")
	_, err = vehicleEventsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tripid", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "recordedat", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7 * 24 * 3600), // Expire after a week
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	// Trip Updates
	tripUpdatesCollection := GetCollection("trip_updates")
	_, err = tripUpdatesCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tripid", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "recordedat", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(3600), // Expire after 1 hour
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
