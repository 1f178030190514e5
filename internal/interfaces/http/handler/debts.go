package handler

import (
	"net/http"

	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// DebtHandler serves customer tabs (fiado)
type DebtHandler struct {
	BaseHandler
	state *state.Controller
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(s *state.Controller) *DebtHandler {
	return &DebtHandler{state: s}
}

// DebtRoutes creates the route group for debts
func DebtRoutes(h *DebtHandler) *router.DomainGroup {
	group := router.NewDomainGroup("debts", "/debts")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.DELETE("/:id", h.Delete)
	return group
}

func (h *DebtHandler) List(c *gin.Context) {
	debts, err := h.state.Debts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(mapAll(debts, toDebtResponse)))
}

// Create records a tab dated today
func (h *DebtHandler) Create(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	note, err := h.state.AddDebt(c.Request.Context(), req.ClientName, string(req.Value), req.Description)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toDebtResponse(note))
}

func (h *DebtHandler) Delete(c *gin.Context) {
	if err := h.state.DeleteDebt(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
