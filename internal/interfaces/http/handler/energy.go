package handler

import (
	"net/http"

	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MeteringHandler serves the energy readings and the stateless calculators
type MeteringHandler struct {
	BaseHandler
	state *state.Controller
}

// NewMeteringHandler creates a new MeteringHandler
func NewMeteringHandler(s *state.Controller) *MeteringHandler {
	return &MeteringHandler{state: s}
}

// EnergyRoutes creates the route group for energy
func EnergyRoutes(h *MeteringHandler) *router.DomainGroup {
	group := router.NewDomainGroup("energy", "/energy")
	group.POST("/consumption", h.Consumption)
	group.GET("/readings", h.ListReadings)
	group.POST("/readings", h.CreateReading)
	group.DELETE("/readings/:id", h.DeleteReading)
	return group
}

// ScaleRoutes creates the route group for the weighing stations
func ScaleRoutes(h *MeteringHandler) *router.DomainGroup {
	group := router.NewDomainGroup("scale", "/scale")
	group.POST("/quotes", h.Quote)
	return group
}

// Consumption computes current minus previous. Nothing is stored.
func (h *MeteringHandler) Consumption(c *gin.Context) {
	var req ConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	delta := metering.Consumption(
		valueobject.ParseAmountOrZero(string(req.Previous)),
		valueobject.ParseAmountOrZero(string(req.Current)),
	)
	h.Success(c, ConsumptionResponse{Consumption: money(delta)})
}

func (h *MeteringHandler) ListReadings(c *gin.Context) {
	readings, err := h.state.EnergyReadings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(mapAll(readings, toEnergyReadingResponse)))
}

func (h *MeteringHandler) CreateReading(c *gin.Context) {
	var req CreateEnergyReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	reading, err := h.state.AddEnergyReading(c.Request.Context(), state.EnergyInput{
		MinReading: string(req.MinReading),
		MaxReading: string(req.MaxReading),
		Factor:     string(req.Factor),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toEnergyReadingResponse(reading))
}

func (h *MeteringHandler) DeleteReading(c *gin.Context) {
	if err := h.state.DeleteEnergyReading(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Quote prices each weighing station as kg price times weight
func (h *MeteringHandler) Quote(c *gin.Context) {
	var req ScaleQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	inputs := make([][2]decimal.Decimal, len(req.Stations))
	for i, s := range req.Stations {
		inputs[i] = [2]decimal.Decimal{
			valueobject.ParseAmountOrZero(string(s.KgPrice)),
			valueobject.ParseAmountOrZero(string(s.Weight)),
		}
	}
	c.JSON(http.StatusOK, dto.NewListResponse(mapAll(metering.QuoteStations(inputs), toStationQuoteResponse)))
}
