// Package events publishes job lifecycle events over Redis pub/sub.
// Delivery is fire-and-forget; the API never blocks or fails a request
// because a subscriber is missing.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/meridianbi/meridian-api/internal/core"
)

// Publisher fans job events out on Redis channels named after the event type.
type Publisher struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewPublisher creates a Redis-backed event publisher.
func NewPublisher(client redis.UniversalClient, logger *slog.Logger) *Publisher {
	var l *slog.Logger
	if logger != nil {
		l = logger.With("component", "event_publisher")
	}
	return &Publisher{
		client: client,
		logger: l,
	}
}

// Publish encodes the event as JSON and publishes it on the channel named by
// its type (job.created, job.cancelled).
func (p *Publisher) Publish(ctx context.Context, event core.JobEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}

	if err := p.client.Publish(ctx, event.Type, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	if p.logger != nil {
		p.logger.DebugContext(ctx, "job event published",
			"type", event.Type,
			"job_id", event.JobID,
		)
	}

	return nil
}

var _ core.EventPublisher = (*Publisher)(nil)
