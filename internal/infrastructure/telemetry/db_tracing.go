package telemetry

import (
	"errors"

	"github.com/fintrak/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing installs otelgorm on db when database tracing is enabled.
// dbSystem is the otel db.system value, e.g. "postgresql" or "sqlite".
// Query variables are stripped unless full SQL logging is switched on.
func RegisterDBTracing(db *gorm.DB, cfg config.TelemetryConfig, dbSystem string, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := db.Callback().Query().After("gorm:query").Register("fintrak:row_count", annotateRows); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("fintrak:row_count", annotateRows); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", dbSystem),
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
	)
	return nil
}

// annotateRows adds row counts to the current span. Not-found is an absent
// document field, so it is not treated as a failure.
func annotateRows(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		RecordError(span, db.Error)
	}
}
