package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fintrak/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testRef = DocumentRef{Collection: "fintrak_data", Document: "main"}

// newMockDocumentStore creates a GormDocumentStore with a mocked SQL connection
func newMockDocumentStore(t *testing.T) (*GormDocumentStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	store := NewGormDocumentStore(gormDB, testRef)
	store.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return store, mock, mockDB
}

// newSQLiteDocumentStore creates a GormDocumentStore over a private in-memory sqlite database
func newSQLiteDocumentStore(t *testing.T) *GormDocumentStore {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.DocumentFieldModel{}))
	return NewGormDocumentStore(db, testRef)
}

func TestDocumentRef_String(t *testing.T) {
	assert.Equal(t, "fintrak_data/main", testRef.String())
}

func TestGormDocumentStore_Fetch(t *testing.T) {
	t.Run("returns stored fields", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"collection", "document_id", "field", "value", "updated_at"}).
			AddRow("fintrak_data", "main", "bills", `[{"id":"b1"}]`, time.Now()).
			AddRow("fintrak_data", "main", "debts", `[]`, time.Now())

		mock.ExpectQuery(`SELECT \* FROM "document_fields" WHERE collection = \$1 AND document_id = \$2`).
			WithArgs("fintrak_data", "main").
			WillReturnRows(rows)

		fields, err := store.Fetch(context.Background())

		require.NoError(t, err)
		assert.Len(t, fields, 2)
		assert.JSONEq(t, `[{"id":"b1"}]`, string(fields["bills"]))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing document is empty", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "document_fields"`).
			WillReturnRows(sqlmock.NewRows([]string{"collection", "document_id", "field", "value", "updated_at"}))

		fields, err := store.Fetch(context.Background())

		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("wraps query errors", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "document_fields"`).WillReturnError(errors.New("connection refused"))

		_, err := store.Fetch(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fintrak_data/main")
	})
}

func TestGormDocumentStore_Merge(t *testing.T) {
	t.Run("upserts inside a transaction", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "document_fields" .* ON CONFLICT \("collection","document_id","field"\) DO UPDATE SET "value"="excluded"."value","updated_at"="excluded"."updated_at"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := store.Merge(context.Background(), map[string]json.RawMessage{
			"bills": json.RawMessage(`[]`),
			"debts": json.RawMessage(`[]`),
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "document_fields"`).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := store.Merge(context.Background(), map[string]json.RawMessage{"bills": json.RawMessage(`[]`)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to write", func(t *testing.T) {
		store, mock, mockDB := newMockDocumentStore(t)
		defer mockDB.Close()

		require.NoError(t, store.Merge(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentStore_SQLite(t *testing.T) {
	store := newSQLiteDocumentStore(t)
	ctx := context.Background()

	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{
		"bills": json.RawMessage(`[{"id":"1"}]`),
		"debts": json.RawMessage(`[]`),
	}))
	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{
		"bills": json.RawMessage(`[{"id":"2"}]`),
	}))

	fields, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"2"}]`, string(fields["bills"]), "merge replaces the field")
	assert.JSONEq(t, `[]`, string(fields["debts"]), "other fields are untouched")
	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryDocumentStore(t *testing.T) {
	store := NewMemoryDocumentStore()
	ctx := context.Background()

	fields, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, fields)

	payload := json.RawMessage(`[1]`)
	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{"entries": payload}))
	payload[1] = '9'

	fields, err = store.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(fields["entries"]), "store keeps its own copy")

	store.FailMerge = errors.New("offline")
	assert.EqualError(t, store.Merge(ctx, map[string]json.RawMessage{"entries": payload}), "offline")
}
