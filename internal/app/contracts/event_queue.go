package contracts

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// LifecycleEvent is published to the durable events queue whenever a
// booking or payment changes state, for downstream notification workers.
type LifecycleEvent struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	OccurredAt time.Time       `json:"occurred_at"`
	Body       json.RawMessage `json:"body"`
}

type EventQueueService interface {
	Publish(ctx context.Context, event *LifecycleEvent) error
}
