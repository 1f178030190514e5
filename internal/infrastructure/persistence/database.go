package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrak/backend/internal/infrastructure/config"
	"github.com/fintrak/backend/internal/infrastructure/migration"
	"github.com/fintrak/backend/internal/infrastructure/persistence/models"
	"github.com/fintrak/backend/migrations"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
	// System is the otel db.system name of the backing engine
	System string
}

// NewDatabase opens the SQL backend selected by the store driver.
// Only the postgres and sqlite drivers are SQL-backed.
func NewDatabase(cfg *config.Config, log gormlogger.Interface) (*Database, error) {
	if log == nil {
		log = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	gormCfg := &gorm.Config{
		Logger:                 log,
		SkipDefaultTransaction: true,
	}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		gormCfg.PrepareStmt = true
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		d := &Database{DB: db, System: "postgresql"}
		if err := d.configurePool(cfg.Database); err != nil {
			return nil, err
		}
		return d, nil

	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Store.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		return &Database{DB: db, System: "sqlite"}, nil

	default:
		return nil, fmt.Errorf("store driver %q is not backed by a SQL database", cfg.Store.Driver)
	}
}

func (d *Database) configurePool(cfg config.DatabaseConfig) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// EnsureSchema creates the document table. PostgreSQL runs the embedded
// migrations; SQLite uses GORM auto-migration.
func (d *Database) EnsureSchema(logger *zap.Logger) error {
	if d.System == "sqlite" {
		if err := d.DB.AutoMigrate(&models.DocumentFieldModel{}); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		return nil
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	m, err := migration.NewEmbedded(sqlDB, migrations.FS, logger)
	if err != nil {
		return err
	}
	// closing the migrator would close the shared connection pool
	return m.Up()
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
