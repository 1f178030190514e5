package handler

import (
	"context"

	"github.com/fintrak/backend/internal/application/backup"
	"github.com/fintrak/backend/internal/application/insight"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// Summarizer produces the profit suggestions
type Summarizer interface {
	Summarize(ctx context.Context) (*insight.Result, error)
}

// Snapshotter uploads a backup of the document
type Snapshotter interface {
	Snapshot(ctx context.Context) (*backup.Result, error)
}

// InsightHandler serves the AI insight summary
type InsightHandler struct {
	BaseHandler
	insights Summarizer
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(s Summarizer) *InsightHandler {
	return &InsightHandler{insights: s}
}

// InsightRoutes creates the route group for insights
func InsightRoutes(h *InsightHandler) *router.DomainGroup {
	group := router.NewDomainGroup("insights", "/insights")
	group.POST("", h.Summarize)
	return group
}

// Summarize asks the model for two profit actions. Model failures still
// answer 200 with a fixed message; only an empty ledger is rejected.
func (h *InsightHandler) Summarize(c *gin.Context) {
	result, err := h.insights.Summarize(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BackupHandler serves document snapshots
type BackupHandler struct {
	BaseHandler
	backups Snapshotter
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(s Snapshotter) *BackupHandler {
	return &BackupHandler{backups: s}
}

// BackupRoutes creates the route group for backups
func BackupRoutes(h *BackupHandler) *router.DomainGroup {
	group := router.NewDomainGroup("backups", "/backups")
	group.POST("", h.Create)
	return group
}

// Create uploads a snapshot and returns its download link
func (h *BackupHandler) Create(c *gin.Context) {
	result, err := h.backups.Snapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
