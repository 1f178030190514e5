package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisDocumentStore keeps a document as one Redis hash, field per hash entry
type RedisDocumentStore struct {
	client *redis.Client
	key    string
}

// NewRedisDocumentStore creates a store for the referenced document.
// The hash key is "fintrak:doc:<collection>/<document>".
func NewRedisDocumentStore(client *redis.Client, ref DocumentRef) *RedisDocumentStore {
	return &RedisDocumentStore{
		client: client,
		key:    "fintrak:doc:" + ref.String(),
	}
}

// Fetch implements DocumentStore
func (s *RedisDocumentStore) Fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", s.key, err)
	}

	fields := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		fields[k] = json.RawMessage(v)
	}
	return fields, nil
}

// Merge implements DocumentStore. HSET with several pairs is atomic.
func (s *RedisDocumentStore) Merge(ctx context.Context, fields map[string]json.RawMessage) error {
	if len(fields) == 0 {
		return nil
	}

	values := make(map[string]any, len(fields))
	for k, v := range fields {
		values[k] = string(v)
	}
	if err := s.client.HSet(ctx, s.key, values).Err(); err != nil {
		return fmt.Errorf("merge document %s: %w", s.key, err)
	}
	return nil
}

// Ping implements DocumentStore
func (s *RedisDocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ DocumentStore = (*RedisDocumentStore)(nil)
