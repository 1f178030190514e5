package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisWriterLock serializes document writers across processes with a Redis lease
type RedisWriterLock struct {
	locker *redislock.Client
	key    string
	ttl    time.Duration
	retry  redislock.RetryStrategy
	logger *zap.Logger
}

// NewRedisWriterLock creates a lock on key. The lease expires after ttl if the
// holder dies; acquisition retries every 50ms until ctx ends.
func NewRedisWriterLock(client *redis.Client, key string, ttl time.Duration, logger *zap.Logger) *RedisWriterLock {
	return &RedisWriterLock{
		locker: redislock.New(client),
		key:    key,
		ttl:    ttl,
		retry:  redislock.LinearBackoff(50 * time.Millisecond),
		logger: logger,
	}
}

// Acquire implements document.WriterLock. Failing to get the lease before ctx
// ends is reported as a concurrency conflict.
func (l *RedisWriterLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	lock, err := l.locker.Obtain(ctx, l.key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		l.logger.Warn("writer lock busy", zap.String("key", l.key))
		return nil, shared.ErrConcurrencyConflict
	}
	if err != nil {
		return nil, fmt.Errorf("obtain writer lock %s: %w", l.key, err)
	}

	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// lease expired while writing; the write already happened
			l.logger.Warn("writer lock expired before release", zap.String("key", l.key))
			return nil
		}
		return err
	}, nil
}

var _ document.WriterLock = (*RedisWriterLock)(nil)
