//go:build integration

// Package integration runs the document store and the HTTP API against a
// real PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/fintrak/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB is a migrated connection to the shared PostgreSQL container
type TestDB struct {
	Database *persistence.Database
	SqlDB    *sql.DB
	DSN      string
	t        *testing.T
}

// NewTestDB returns a connection to the shared container, starting it and
// applying the embedded migrations on first use. Tables are truncated so
// every test starts from an empty document.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()
	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("fintrak_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start PostgreSQL container")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "Failed to get connection string")

		sharedContainer = container
		sharedContainerDSN = dsn
	}

	db := connect(t, sharedContainerDSN)
	require.NoError(t, db.EnsureSchema(zap.NewNop()), "Failed to apply migrations")
	require.NoError(t, db.DB.Exec("TRUNCATE TABLE document_fields").Error)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	tdb := &TestDB{Database: db, SqlDB: sqlDB, DSN: sharedContainerDSN, t: t}
	t.Cleanup(func() {
		_ = tdb.Database.Close()
	})
	return tdb
}

// Store returns a document store over ref
func (tdb *TestDB) Store(collection, document string) *persistence.GormDocumentStore {
	return persistence.NewGormDocumentStore(tdb.Database.DB, persistence.DocumentRef{
		Collection: collection,
		Document:   document,
	})
}

func connect(t *testing.T, dsn string) *persistence.Database {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	return &persistence.Database{DB: db, System: "postgresql"}
}
