package models

import "time"

// DocumentFieldModel is one top-level field of a logical document stored as JSON text
type DocumentFieldModel struct {
	Collection string    `gorm:"type:varchar(100);primaryKey"`
	DocumentID string    `gorm:"column:document_id;type:varchar(100);primaryKey"`
	Field      string    `gorm:"type:varchar(100);primaryKey"`
	Value      string    `gorm:"type:text;not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentFieldModel) TableName() string {
	return "document_fields"
}
