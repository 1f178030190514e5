package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrak/backend/internal/application/backup"
	importapp "github.com/fintrak/backend/internal/application/import"
	appinsight "github.com/fintrak/backend/internal/application/insight"
	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/infrastructure/cache"
	"github.com/fintrak/backend/internal/infrastructure/config"
	"github.com/fintrak/backend/internal/infrastructure/insight"
	"github.com/fintrak/backend/internal/infrastructure/logger"
	"github.com/fintrak/backend/internal/infrastructure/persistence"
	"github.com/fintrak/backend/internal/infrastructure/printing"
	"github.com/fintrak/backend/internal/infrastructure/scheduler"
	"github.com/fintrak/backend/internal/infrastructure/storage"
	"github.com/fintrak/backend/internal/infrastructure/telemetry"
	"github.com/fintrak/backend/internal/interfaces/http/server"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromConfig(cfg.Log, cfg.App.Env))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FinTrak",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("store", cfg.Store.Driver),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Invalid timezone", zap.String("timezone", cfg.App.Timezone), zap.Error(err))
	}

	// Redis backs the document store, the writer lock and the idempotency keys
	var redisClient *redis.Client
	if cfg.Store.Driver == config.DriverRedis || cfg.Lock.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	store, closeStore := openStore(cfg, redisClient, log)
	defer closeStore()

	gateway := persistence.NewDocumentGateway(store)

	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		chrome, err := printing.NewChromedpRenderer(printing.ChromedpConfigFrom(cfg.Printing, log))
		if err != nil {
			log.Fatal("Failed to initialize receipt renderer", zap.Error(err))
		}
		defer func() {
			_ = chrome.Close()
		}()
		renderer = chrome
	} else {
		log.Info("Receipt printing disabled; PDF receipts will be unavailable")
	}

	opts := []state.Option{
		state.WithLocation(loc),
		state.WithLogger(log),
		state.WithReceiptPrinter(printing.NewReceiptPrinter(renderer, loc)),
	}
	if cfg.Lock.Enabled {
		opts = append(opts, state.WithWriterLock(
			cache.NewRedisWriterLock(redisClient, cfg.Lock.Key, cfg.Lock.TTL, log)))
		log.Info("Cross-process writer lock enabled", zap.String("key", cfg.Lock.Key))
	}

	controller, err := state.NewController(ctx, gateway, opts...)
	if err != nil {
		log.Fatal("Failed to load document", zap.Error(err))
	}

	generator, err := insight.NewGenerator(ctx, cfg.Insight, log)
	if err != nil {
		log.Fatal("Failed to initialize insight generator", zap.Error(err))
	}
	insights := appinsight.NewService(controller, generator, cfg.Insight.Timeout, log)

	var objects backup.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal("Backup bucket unavailable", zap.String("bucket", s3.Bucket()), zap.Error(err))
		}
		objects = s3
	} else {
		log.Info("Object storage disabled; backups are kept in memory")
		objects = storage.NewStubObjectStorage()
	}
	ref := persistence.DocumentRef{Collection: cfg.Store.Collection, Document: cfg.Store.Document}
	backups := backup.NewService(gateway, objects, ref.String(), log)

	var backupTrigger *scheduler.DailyTrigger
	if cfg.Backup.Schedule != "" {
		hour, minute, err := scheduler.ParseCronSchedule(cfg.Backup.Schedule)
		if err != nil {
			log.Fatal("Invalid backup schedule", zap.String("schedule", cfg.Backup.Schedule), zap.Error(err))
		}
		backupTrigger, err = scheduler.NewDailyTrigger(scheduler.DailyTriggerConfig{
			Name:     "backup",
			Hour:     hour,
			Minute:   minute,
			Location: loc,
		}, func(ctx context.Context) error {
			_, err := backups.Snapshot(ctx)
			return err
		}, log)
		if err != nil {
			log.Fatal("Failed to create backup trigger", zap.Error(err))
		}
		if err := backupTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start backup trigger", zap.Error(err))
		}
	}

	idempotency := cache.NewIdempotencyStore(redisClient, log)
	defer func() {
		if closer, ok := idempotency.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := server.New(server.Options{
		Config:      cfg,
		Logger:      log,
		Version:     version,
		State:       controller,
		Insights:    insights,
		Backups:     backups,
		Imports:     importapp.NewBudgetImportService(controller, log),
		Store:       store,
		Idempotency: idempotency,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	defer engine.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if backupTrigger != nil {
		if err := backupTrigger.Stop(shutdownCtx); err != nil {
			log.Error("Backup trigger did not stop in time", zap.Error(err))
		}
	}

	log.Info("Server exited")
}

// openStore connects the document store selected by store.driver
func openStore(cfg *config.Config, redisClient *redis.Client, log *zap.Logger) (persistence.DocumentStore, func()) {
	ref := persistence.DocumentRef{Collection: cfg.Store.Collection, Document: cfg.Store.Document}

	switch cfg.Store.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err := persistence.NewDatabase(cfg, gormLog)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, db.System, log); err != nil {
			log.Warn("Database tracing unavailable", zap.Error(err))
		}
		if cfg.Store.AutoMigrate {
			if err := db.EnsureSchema(log); err != nil {
				log.Fatal("Failed to prepare database schema", zap.Error(err))
			}
		}
		log.Info("Database connected", zap.String("system", db.System), zap.String("document", ref.String()))
		return persistence.NewGormDocumentStore(db.DB, ref), func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}

	case config.DriverRedis:
		log.Info("Using Redis document store", zap.String("document", ref.String()))
		return persistence.NewRedisDocumentStore(redisClient, ref), func() {}

	default:
		log.Warn("Using in-memory document store; data is lost on restart")
		return persistence.NewMemoryDocumentStore(), func() {}
	}
}
