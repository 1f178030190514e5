// Package backup copies the shared document to object storage.
package backup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultLinkTTL is how long a backup download link stays valid
const DefaultLinkTTL = 24 * time.Hour

// ObjectStorage stores backup objects
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// Exporter returns the serialized document
type Exporter interface {
	Export(ctx context.Context) ([]byte, error)
}

// Result describes an uploaded backup
type Result struct {
	Key         string    `json:"key"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// Service takes document snapshots
type Service struct {
	exporter Exporter
	storage  ObjectStorage
	prefix   string
	now      func() time.Time
	logger   *zap.Logger
}

// NewService creates a backup service. Keys are written under prefix,
// usually "<collection>/<document>".
func NewService(exporter Exporter, storage ObjectStorage, prefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		exporter: exporter,
		storage:  storage,
		prefix:   prefix,
		now:      time.Now,
		logger:   logger,
	}
}

// Snapshot uploads the current document as JSON. A failing download link
// does not fail the backup.
func (s *Service) Snapshot(ctx context.Context) (*Result, error) {
	data, err := s.exporter.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export document: %w", err)
	}

	created := s.now().UTC()
	key := fmt.Sprintf("%s/%s.json", s.prefix, created.Format("20060102T150405Z"))

	if err := s.storage.Upload(ctx, key, data, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload backup: %w", err)
	}

	result := &Result{Key: key, Size: len(data), CreatedAt: created}

	url, expiresAt, err := s.storage.DownloadURL(ctx, key, DefaultLinkTTL)
	if err != nil {
		s.logger.Warn("backup download link unavailable", zap.String("key", key), zap.Error(err))
	} else {
		result.DownloadURL = url
		result.ExpiresAt = expiresAt
	}

	s.logger.Info("document backup created", zap.String("key", key), zap.Int("size", len(data)))
	return result, nil
}
