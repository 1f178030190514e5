package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/infrastructure/export"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// LedgerHandler serves the daily entry console, history, vault and dashboard
type LedgerHandler struct {
	BaseHandler
	state *state.Controller
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(s *state.Controller) *LedgerHandler {
	return &LedgerHandler{state: s}
}

// LedgerRoutes creates the route group for the ledger
func LedgerRoutes(h *LedgerHandler) *router.DomainGroup {
	group := router.NewDomainGroup("ledger", "/ledger")

	group.GET("/today", h.Today)
	group.POST("/today/values", h.AddValue)
	group.PUT("/today/markup", h.UpdateMarkup)

	group.GET("/entries", h.History)
	group.GET("/entries/export", h.Export)
	group.DELETE("/entries/:id", h.DeleteEntry)

	group.GET("/vault", h.Vault)
	group.GET("/dashboard", h.Dashboard)

	return group
}

// Today returns today's entry; an unsaved one is synthesized
func (h *LedgerHandler) Today(c *gin.Context) {
	view, err := h.state.Today(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTodayResponse(view))
}

// AddValue adds an amount to one channel of today's entry
func (h *LedgerHandler) AddValue(c *gin.Context) {
	var req AddValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	view, err := h.state.AddValue(c.Request.Context(), req.Channel, string(req.Amount))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTodayResponse(view))
}

// UpdateMarkup sets today's markup percentage
func (h *LedgerHandler) UpdateMarkup(c *gin.Context) {
	var req UpdateMarkupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	view, err := h.state.UpdateMarkup(c.Request.Context(), string(req.Percent))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toTodayResponse(view))
}

// History lists every entry, most recent first
func (h *LedgerHandler) History(c *gin.Context) {
	history, err := h.state.History(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(toEntryResponses(history)))
}

// DeleteEntry removes a ledger row
func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	if err := h.state.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Export downloads the history as an XLSX workbook
func (h *LedgerHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.state.ExportHistory(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.HistoryFilename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// Vault totals the entries in a date range
func (h *LedgerHandler) Vault(c *gin.Context) {
	var q VaultQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.ValidationError(c, err)
		return
	}

	totals, err := h.state.Vault(c.Request.Context(), q.Start, q.End)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, VaultResponse{
		Start:      q.Start,
		End:        q.End,
		TotalEntry: money(totals.TotalEntry),
		TotalExit:  money(totals.TotalExit),
		Balance:    money(totals.Balance),
		Count:      totals.Count,
	})
}

// Dashboard returns overview totals and the chart series
func (h *LedgerHandler) Dashboard(c *gin.Context) {
	d, err := h.state.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDashboardResponse(d))
}
