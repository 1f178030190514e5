package handler

import (
	"net/http"

	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// BillHandler serves accounts payable
type BillHandler struct {
	BaseHandler
	state *state.Controller
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(s *state.Controller) *BillHandler {
	return &BillHandler{state: s}
}

// BillRoutes creates the route group for bills
func BillRoutes(h *BillHandler) *router.DomainGroup {
	group := router.NewDomainGroup("bills", "/bills")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.POST("/:id/toggle", h.Toggle)
	group.DELETE("/:id", h.Delete)
	return group
}

// List returns every bill, newest first
func (h *BillHandler) List(c *gin.Context) {
	bills, err := h.state.Bills(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(mapAll(bills, toBillResponse)))
}

// Create adds an unpaid bill
func (h *BillHandler) Create(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	bill, err := h.state.AddBill(c.Request.Context(), req.Description, string(req.Value), req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBillResponse(bill))
}

// Toggle flips the paid flag
func (h *BillHandler) Toggle(c *gin.Context) {
	bill, err := h.state.ToggleBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillResponse(bill))
}

// Delete removes a bill
func (h *BillHandler) Delete(c *gin.Context) {
	if err := h.state.DeleteBill(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
