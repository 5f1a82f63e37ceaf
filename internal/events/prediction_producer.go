package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// PredictionProducer publishes one audit entry per delegate invocation to a
// redis stream, so prediction traffic can be inspected without a warehouse.
type PredictionProducer struct {
	client     *redis.Client
	streamName string
}

func NewPredictionProducer(client *redis.Client, streamName string) *PredictionProducer {
	return &PredictionProducer{
		client:     client,
		streamName: streamName,
	}
}

func (p *PredictionProducer) Publish(ctx context.Context, event *PredictionEvent) error {
	fields := map[string]interface{}{
		"user_id":     event.UserID,
		"tickers":     strings.Join(event.Tickers, ","),
		"outcome":     event.Outcome,
		"duration_ms": event.DurationMs,
		"timestamp":   event.Timestamp,
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamName,
		Values: fields,
	})

	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to publish prediction event: %w", err)
	}

	return nil
}

func (p *PredictionProducer) StreamLength(ctx context.Context) (int64, error) {
	result := p.client.XLen(ctx, p.streamName)
	return result.Val(), result.Err()
}
