// Package server assembles the gin engine: middleware stack, health check
// and the versioned API groups.
package server

import (
	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/infrastructure/config"
	"github.com/fintrak/backend/internal/infrastructure/logger"
	"github.com/fintrak/backend/internal/interfaces/http/handler"
	"github.com/fintrak/backend/internal/interfaces/http/middleware"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries everything the engine serves
type Options struct {
	Config      *config.Config
	Logger      *zap.Logger
	Version     string
	State       *state.Controller
	Insights    handler.Summarizer
	Backups     handler.Snapshotter
	Imports     handler.BudgetImporter
	Store       handler.Pinger
	Idempotency shared.IdempotencyStore
}

// Engine is the assembled HTTP engine. Close releases background workers
// started by the middleware.
type Engine struct {
	*gin.Engine
	Router  *router.Router
	limiter *middleware.RateLimiter
}

// Close stops the rate limiter cleanup loop
func (e *Engine) Close() {
	if e.limiter != nil {
		e.limiter.Stop()
	}
}

// New builds the engine. The caller is expected to have set the gin mode.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.GinMiddleware(log, "/health", "/api/v1/ping"))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	out := &Engine{Engine: engine}
	if cfg.HTTP.RateLimitEnabled {
		out.limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(out.limiter))
	}

	system := handler.NewSystemHandler(cfg.App.Name, opts.Version, cfg.Store.Driver, opts.Store)
	engine.GET("/health", system.Health)

	var apiMiddleware []gin.HandlerFunc
	if opts.Idempotency != nil {
		apiMiddleware = append(apiMiddleware, middleware.Idempotency(opts.Idempotency, cfg.HTTP.IdempotencyTTL))
	}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(apiMiddleware...),
	)
	r.Register(
		handler.LedgerRoutes(handler.NewLedgerHandler(opts.State)),
		handler.BillRoutes(handler.NewBillHandler(opts.State)),
		handler.DebtRoutes(handler.NewDebtHandler(opts.State)),
		handler.CatalogRoutes(handler.NewCatalogHandler(opts.State, opts.Imports)),
		handler.ComandaRoutes(handler.NewComandaHandler(opts.State)),
	)
	metering := handler.NewMeteringHandler(opts.State)
	r.Register(handler.EnergyRoutes(metering), handler.ScaleRoutes(metering))
	if opts.Insights != nil {
		r.Register(handler.InsightRoutes(handler.NewInsightHandler(opts.Insights)))
	}
	if opts.Backups != nil {
		r.Register(handler.BackupRoutes(handler.NewBackupHandler(opts.Backups)))
	}
	r.Register(handler.SystemRoutes(system))

	api := r.Setup()
	api.GET("/ping", system.Ping)
	out.Router = r

	for _, route := range r.Routes() {
		log.Debug("Route registered",
			zap.String("method", route.Method),
			zap.String("path", r.BasePath()+route.Path),
			zap.String("group", route.Group),
		)
	}

	var base handler.BaseHandler
	engine.NoRoute(func(c *gin.Context) {
		base.NotFound(c, "Route not found")
	})
	return out, nil
}
