package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityMirror stores each event's remaining seats under seats:<id>
// for readers outside this process. The in-memory catalog stays the source
// of truth.
type AvailabilityMirror struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewAvailabilityMirror returns a mirror whose keys expire after ttl; a zero
// ttl keeps them until overwritten.
func NewAvailabilityMirror(client redis.Cmdable, ttl time.Duration) *AvailabilityMirror {
	return &AvailabilityMirror{client: client, ttl: ttl}
}

func AvailabilityKey(eventID int64) string {
	return fmt.Sprintf("seats:%d", eventID)
}

func (m *AvailabilityMirror) PublishAvailability(ctx context.Context, eventID int64, available int) error {
	if err := m.client.Set(ctx, AvailabilityKey(eventID), available, m.ttl).Err(); err != nil {
		return fmt.Errorf("failed to mirror availability for event %d: %w", eventID, err)
	}

	return nil
}
