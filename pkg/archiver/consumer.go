package archiver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/wayfarer/wayfarer/pkg/database"
	"github.com/wayfarer/wayfarer/pkg/realtime"
	"github.com/wayfarer/wayfarer/pkg/redis_client"
)

const numConsumers = 2
const batchSize = 200

// StartConsumers drains the realtime queue into the vehicle_events archive
// collection so position history survives the snapshot replace cycle.
func StartConsumers() {
	log.Info().Msg("Starting vehicle event archiver")

	queue, err := redis_client.QueueConnection.OpenQueue("realtime-queue")
	if err != nil {
		panic(err)
	}
	if err := queue.StartConsuming(numConsumers*batchSize, 1*time.Second); err != nil {
		panic(err)
	}

	for i := 0; i < numConsumers; i++ {
		if _, err := queue.AddBatchConsumer(fmt.Sprintf("realtime-queue-%d", i), batchSize, 2*time.Second, NewBatchConsumer(i)); err != nil {
			panic(err)
		}
	}
}

type BatchConsumer struct {
	id int
}

func NewBatchConsumer(id int) *BatchConsumer {
	return &BatchConsumer{id: id}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	var events []interface{}

	for _, payload := range payloads {
		var vehicleUpdate *realtime.VehicleUpdate
		if err := json.Unmarshal([]byte(payload), &vehicleUpdate); err != nil {
			log.Error().Err(err).Msg("Failed to decode vehicle update event")
			continue
		}

		events = append(events, vehicleUpdate)
	}

	if len(events) > 0 {
		vehicleEventsCollection := database.GetCollection("vehicle_events")

		startTime := time.Now()
		_, err := vehicleEventsCollection.InsertMany(context.Background(), events)
		log.Info().Int("Length", len(events)).Str("Time", time.Since(startTime).String()).Msg("Bulk write")

		if err != nil {
			log.Error().Err(err).Msg("Failed to bulk write vehicle events")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack vehicle event")
		}
	}
}
