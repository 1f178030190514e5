package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so a retried mutation is applied once
type IdempotencyStore interface {
	// MarkProcessed marks a key as seen with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been seen
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Forget removes a key so that a failed request can be retried
	Forget(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
