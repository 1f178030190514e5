package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	importapp "github.com/fintrak/backend/internal/application/import"
	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// BudgetImporter loads products from a CSV file
type BudgetImporter interface {
	Import(ctx context.Context, r io.Reader, policy catalog.ConflictPolicy) (*importapp.BudgetImportResult, error)
}

// CatalogHandler serves the product margin catalogue
type CatalogHandler struct {
	BaseHandler
	state    *state.Controller
	importer BudgetImporter
}

// NewCatalogHandler creates a new CatalogHandler. The import route is only
// served when importer is not nil.
func NewCatalogHandler(s *state.Controller, importer BudgetImporter) *CatalogHandler {
	return &CatalogHandler{state: s, importer: importer}
}

// CatalogRoutes creates the route group for the catalogue
func CatalogRoutes(h *CatalogHandler) *router.DomainGroup {
	group := router.NewDomainGroup("catalog", "/catalog")
	group.GET("/products", h.List)
	group.POST("/products", h.Create)
	group.GET("/products/search", h.Search)
	group.DELETE("/products/:id", h.Delete)
	if h.importer != nil {
		group.POST("/products/import", h.Import)
	}
	return group
}

// List returns every product with its profit, margin and band
func (h *CatalogHandler) List(c *gin.Context) {
	budgets, err := h.state.Budgets(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(mapAll(budgets, toBudgetResponse)))
}

// Create adds a product
func (h *CatalogHandler) Create(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	budget, err := h.state.AddBudget(c.Request.Context(), req.Name, string(req.Cost), string(req.Price))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBudgetResponse(budget))
}

// Search matches product names; an empty q returns nothing
func (h *CatalogHandler) Search(c *gin.Context) {
	found, err := h.state.SearchCatalogue(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(mapAll(found, toBudgetResponse)))
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.state.DeleteBudget(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Import loads products from a CSV upload, either a multipart "file" field
// or a raw text/csv body. ?mode= picks skip, update or fail for names
// already in the catalogue.
func (h *CatalogHandler) Import(c *gin.Context) {
	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		header, err := c.FormFile("file")
		if err != nil {
			h.BadRequest(c, "multipart upload must carry a file field")
			return
		}
		f, err := header.Open()
		if err != nil {
			h.HandleError(c, err)
			return
		}
		defer f.Close()
		body = f
	}

	result, err := h.importer.Import(c.Request.Context(), body, catalog.ConflictPolicy(c.Query("mode")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
