package cache

import (
	"time"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewIdempotencyStore picks the Redis store when a client is available and
// falls back to the in-memory store otherwise
func NewIdempotencyStore(client *redis.Client, logger *zap.Logger) shared.IdempotencyStore {
	if client != nil {
		logger.Info("using Redis idempotency store")
		return NewRedisIdempotencyStore(client, DefaultIdempotencyPrefix)
	}
	logger.Info("using in-memory idempotency store; retried requests are only deduplicated per process")
	return NewInMemoryIdempotencyStore(5 * time.Minute)
}
