package handler

import (
	"fmt"
	"net/http"

	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/domain/trade"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// SetClientRequest names the customer of a ticket
type SetClientRequest struct {
	ClientName string `json:"clientName" binding:"max=120"`
}

// AddItemRequest adds one unit of an item
type AddItemRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Price Amount `json:"price" binding:"required"`
}

// ModifyQuantityRequest changes an item's quantity
type ModifyQuantityRequest struct {
	Delta int `json:"delta" binding:"required,ne=0"`
}

// ClearRequest must confirm that the ticket is to be emptied
type ClearRequest struct {
	Confirm bool `json:"confirm"`
}

// ComandaItemResponse is one ticket line
type ComandaItemResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// ComandaResponse is a ticket with its computed total
type ComandaResponse struct {
	ID         int                   `json:"id"`
	ClientName string                `json:"clientName"`
	Items      []ComandaItemResponse `json:"items"`
	Total      float64               `json:"total"`
	Open       bool                  `json:"open"`
}

func toComandaResponse(cm trade.Comanda) ComandaResponse {
	return ComandaResponse{
		ID:         cm.ID,
		ClientName: cm.ClientName,
		Items: mapAll(cm.Items, func(i trade.ComandaItem) ComandaItemResponse {
			return ComandaItemResponse{
				ID:       i.ID,
				Name:     i.Name,
				Price:    money(i.Price),
				Quantity: i.Quantity,
				Subtotal: money(i.Subtotal()),
			}
		}),
		Total: money(cm.Total()),
		Open:  cm.IsOpen(),
	}
}

// ComandaHandler serves the order tickets
type ComandaHandler struct {
	BaseHandler
	state *state.Controller
}

// NewComandaHandler creates a new ComandaHandler
func NewComandaHandler(s *state.Controller) *ComandaHandler {
	return &ComandaHandler{state: s}
}

// ComandaRoutes creates the route group for tickets
func ComandaRoutes(h *ComandaHandler) *router.DomainGroup {
	group := router.NewDomainGroup("comandas", "/comandas")

	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id/client", h.SetClient)
	group.POST("/:id/items", h.AddItem)
	group.PATCH("/:id/items/:item_id", h.ModifyQuantity)
	group.POST("/:id/clear", h.Clear)
	group.GET("/:id/receipt", h.Receipt)

	return group
}

func (h *ComandaHandler) List(c *gin.Context) {
	pool, err := h.state.Comandas(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(mapAll(pool, toComandaResponse)))
}

func (h *ComandaHandler) Get(c *gin.Context) {
	id, err := comandaID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	cm, err := h.state.Comanda(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toComandaResponse(cm))
}

// SetClient names the ticket's customer; an empty name clears it
func (h *ComandaHandler) SetClient(c *gin.Context) {
	id, err := comandaID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req SetClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	cm, err := h.state.SetComandaClient(c.Request.Context(), id, req.ClientName)
	h.respond(c, cm, err)
}

// AddItem adds one unit; a line with the same name is incremented
func (h *ComandaHandler) AddItem(c *gin.Context) {
	id, err := comandaID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	cm, err := h.state.AddComandaItem(c.Request.Context(), id, req.Name, string(req.Price))
	h.respond(c, cm, err)
}

// ModifyQuantity adds delta to a line; lines reaching zero are removed
func (h *ComandaHandler) ModifyQuantity(c *gin.Context) {
	id, err := comandaID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ModifyQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	cm, err := h.state.ModifyComandaQuantity(c.Request.Context(), id, c.Param("item_id"), req.Delta)
	h.respond(c, cm, err)
}

// Clear empties a ticket once confirmed
func (h *ComandaHandler) Clear(c *gin.Context) {
	id, err := comandaID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	cm, err := h.state.ClearComanda(c.Request.Context(), id, req.Confirm)
	h.respond(c, cm, err)
}

// Receipt renders the ticket as PDF, or as HTML with ?format=html
func (h *ComandaHandler) Receipt(c *gin.Context) {
	id, err := comandaID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	ctx := c.Request.Context()

	if c.Query("format") == "html" {
		html, err := h.state.ReceiptHTML(ctx, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	pdf, err := h.state.ReceiptPDF(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="comanda-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *ComandaHandler) respond(c *gin.Context, cm trade.Comanda, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toComandaResponse(cm))
}
