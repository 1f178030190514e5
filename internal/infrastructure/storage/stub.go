package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fintrak/backend/internal/application/backup"
)

var _ backup.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps uploaded objects in memory.
// Used when storage is disabled and in tests.
type StubObjectStorage struct {
	// BaseURL prefixes generated download URLs
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubObjectStorage creates an empty stub
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores a copy of data under key
func (s *StubObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

// DownloadURL returns a fake URL for key
func (s *StubObjectStorage) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + key + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// Object returns the stored bytes for key
func (s *StubObjectStorage) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}
