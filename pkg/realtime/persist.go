package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"github.com/wayfarer/wayfarer/pkg/database"
	"github.com/wayfarer/wayfarer/pkg/redis_client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const snapshotCacheTTL = 2 * time.Minute

// Persister writes each published snapshot generation through to Mongo as a
// transactional delete-then-bulk-insert, mirrors it into a short-TTL cache
// for fast reads, and hands decoded events to the realtime queue for any
// downstream consumers.
type Persister struct {
	queue      rmq.Queue
	redisCache *cache.Cache[string]
}

func NewPersister() *Persister {
	persister := &Persister{}

	if redis_client.Client != nil {
		redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(snapshotCacheTTL))
		persister.redisCache = cache.New[string](redisStore)
	}

	if redis_client.QueueConnection != nil {
		queue, err := redis_client.QueueConnection.OpenQueue("realtime-queue")
		if err != nil {
			log.Error().Err(err).Msg("Failed to open realtime queue")
		} else {
			persister.queue = queue
		}
	}

	return persister
}

func (p *Persister) PersistVehiclePositions(ctx context.Context, view *VehiclePositionsView) error {
	documents := make([]interface{}, 0, len(view.Positions))
	for _, update := range view.Positions {
		documents = append(documents, update)
	}

	if err := p.replaceCollection(ctx, "vehicle_positions", documents); err != nil {
		return err
	}

	for key, update := range view.Positions {
		p.cacheRecord(ctx, fmt.Sprintf("vehicleposition/%s", key), update)
		p.publishEvent(update)
	}

	return nil
}

func (p *Persister) PersistTripUpdates(ctx context.Context, view *TripUpdatesView) error {
	documents := make([]interface{}, 0, len(view.Updates))
	for _, update := range view.Updates {
		documents = append(documents, update)
	}

	if err := p.replaceCollection(ctx, "trip_updates", documents); err != nil {
		return err
	}

	for tripID, update := range view.Updates {
		p.cacheRecord(ctx, fmt.Sprintf("tripupdate/%s", tripID), update)
	}

	return nil
}

// replaceCollection supersedes the whole collection in one transaction so
// readers never observe a partially-written generation.
func (p *Persister) replaceCollection(ctx context.Context, collectionName string, documents []interface{}) error {
	if database.MongoGlobalInstance == nil {
		return nil
	}

	collection := database.GetCollection(collectionName)

	session, err := database.MongoGlobalInstance.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionContext mongo.SessionContext) (interface{}, error) {
		if _, err := collection.DeleteMany(sessionContext, bson.M{}); err != nil {
			return nil, err
		}

		if len(documents) == 0 {
			return nil, nil
		}

		return collection.InsertMany(sessionContext, documents)
	})

	return err
}

func (p *Persister) cacheRecord(ctx context.Context, key string, record any) {
	if p.redisCache == nil {
		return
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return
	}

	if err := p.redisCache.Set(ctx, key, string(recordJSON)); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to cache realtime record")
	}
}

func (p *Persister) publishEvent(update VehicleUpdate) {
	if p.queue == nil {
		return
	}

	updateJSON, err := json.Marshal(update)
	if err != nil {
		return
	}

	if err := p.queue.PublishBytes(updateJSON); err != nil {
		log.Debug().Err(err).Msg("Failed to publish vehicle update event")
	}
}
