package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fintrak/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentStore stores each document field as one row of document_fields
type GormDocumentStore struct {
	db  *gorm.DB
	ref DocumentRef
	now func() time.Time
}

// NewGormDocumentStore creates a store for the referenced document
func NewGormDocumentStore(db *gorm.DB, ref DocumentRef) *GormDocumentStore {
	return &GormDocumentStore{
		db:  db,
		ref: ref,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Fetch implements DocumentStore
func (s *GormDocumentStore) Fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	var rows []models.DocumentFieldModel
	err := s.db.WithContext(ctx).
		Where("collection = ? AND document_id = ?", s.ref.Collection, s.ref.Document).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", s.ref, err)
	}

	fields := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		fields[row.Field] = json.RawMessage(row.Value)
	}
	return fields, nil
}

// Merge implements DocumentStore. All fields are upserted in one transaction.
func (s *GormDocumentStore) Merge(ctx context.Context, fields map[string]json.RawMessage) error {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	now := s.now()
	rows := make([]models.DocumentFieldModel, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.DocumentFieldModel{
			Collection: s.ref.Collection,
			DocumentID: s.ref.Document,
			Field:      name,
			Value:      string(fields[name]),
			UpdatedAt:  now,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "document_id"}, {Name: "field"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("merge document %s: %w", s.ref, err)
	}
	return nil
}

// Ping implements DocumentStore
func (s *GormDocumentStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var _ DocumentStore = (*GormDocumentStore)(nil)
