package publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kraytos1/aces-analytics/internal/ingest/gamechanger"
)

// ScrapeStream is the Redis stream carrying scrape progress events.
const ScrapeStream = "aces.scrape.progress"

// RedisStreamPublisher publishes scrape events to a Redis stream so other
// consumers (the websocket feed, audit tooling) can follow runs as they
// happen.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// Publish writes one progress event to the stream. Publishing is best-effort:
// a Redis failure is logged but never interrupts the ingest loop.
func (rsp *RedisStreamPublisher) Publish(ctx context.Context, event gamechanger.ProgressEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WARN] Failed to marshal progress event: %v", err)
		return
	}

	err = rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: ScrapeStream,
		MaxLen: 1000,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
	if err != nil {
		log.Printf("[WARN] Failed to publish progress event: %v", err)
	}
}
