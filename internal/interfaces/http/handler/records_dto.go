package handler

import (
	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/partner"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
)

// mapAll converts every record with fn
func mapAll[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// optionalDay renders a zero day as an empty string
func optionalDay(d valueobject.Day) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// CreateBillRequest adds an account payable
type CreateBillRequest struct {
	Description string `json:"description" binding:"required,max=200"`
	Value       Amount `json:"value" binding:"required"`
	DueDate     string `json:"dueDate" binding:"required,datetime=2006-01-02"`
}

// BillResponse is an account payable
type BillResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	DueDate     string  `json:"dueDate"`
	Paid        bool    `json:"paid"`
}

func toBillResponse(b finance.Bill) BillResponse {
	return BillResponse{
		ID:          b.ID,
		Description: b.Description,
		Value:       money(b.Value),
		DueDate:     b.DueDate.String(),
		Paid:        b.Paid,
	}
}

// CreateDebtRequest records a customer tab
type CreateDebtRequest struct {
	ClientName  string `json:"clientName" binding:"required,max=120"`
	Value       Amount `json:"value" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// DebtResponse is a customer tab
type DebtResponse struct {
	ID          string  `json:"id"`
	ClientName  string  `json:"clientName"`
	Value       float64 `json:"value"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

func toDebtResponse(n partner.DebtNote) DebtResponse {
	return DebtResponse{
		ID:          n.ID,
		ClientName:  n.ClientName,
		Value:       money(n.Value),
		Date:        n.Date.String(),
		Description: n.Description,
	}
}

// CreateBudgetRequest adds a product to the margin catalogue
type CreateBudgetRequest struct {
	Name  string `json:"name" binding:"required,max=120"`
	Cost  Amount `json:"cost" binding:"required"`
	Price Amount `json:"price" binding:"required"`
}

// BudgetResponse is a catalogue product with its derived margin
type BudgetResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	Price         float64 `json:"price"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"marginPercent"`
	Band          string  `json:"band"`
}

func toBudgetResponse(p catalog.ProductBudget) BudgetResponse {
	return BudgetResponse{
		ID:            p.ID,
		Name:          p.Name,
		Cost:          money(p.Cost),
		Price:         money(p.Price),
		Profit:        money(p.Profit()),
		MarginPercent: money(p.MarginPercent()),
		Band:          string(p.Band()),
	}
}

// CreateEnergyReadingRequest stores a meter reading
type CreateEnergyReadingRequest struct {
	MinReading Amount `json:"minReading" binding:"required"`
	MaxReading Amount `json:"maxReading" binding:"required"`
	Factor     Amount `json:"factor" binding:"required"`
	StartDate  string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// EnergyReadingResponse is a stored reading with its derived consumption
type EnergyReadingResponse struct {
	ID          string  `json:"id"`
	MinReading  float64 `json:"minReading"`
	MaxReading  float64 `json:"maxReading"`
	Factor      float64 `json:"factor"`
	StartDate   string  `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate,omitempty"`
	Consumption float64 `json:"consumption"`
	Cost        float64 `json:"cost"`
}

func toEnergyReadingResponse(r metering.EnergyReading) EnergyReadingResponse {
	return EnergyReadingResponse{
		ID:          r.ID,
		MinReading:  money(r.MinReading),
		MaxReading:  money(r.MaxReading),
		Factor:      money(r.Factor),
		StartDate:   optionalDay(r.StartDate),
		EndDate:     optionalDay(r.EndDate),
		Consumption: money(r.Consumption()),
		Cost:        money(r.Cost()),
	}
}

// ConsumptionRequest feeds the transient consumption calculator.
// Unparseable readings count as zero.
type ConsumptionRequest struct {
	Previous Amount `json:"previous"`
	Current  Amount `json:"current"`
}

// ConsumptionResponse is the meter delta
type ConsumptionResponse struct {
	Consumption float64 `json:"consumption"`
}

// StationInput is one weighing station; unparseable fields count as zero
type StationInput struct {
	KgPrice Amount `json:"kgPrice"`
	Weight  Amount `json:"weight"`
}

// ScaleQuoteRequest prices up to four stations
type ScaleQuoteRequest struct {
	Stations []StationInput `json:"stations" binding:"required,min=1,max=4"`
}

// StationQuoteResponse is the price at one station
type StationQuoteResponse struct {
	Station int     `json:"station"`
	KgPrice float64 `json:"kgPrice"`
	Weight  float64 `json:"weight"`
	Total   float64 `json:"total"`
}

func toStationQuoteResponse(q metering.StationQuote) StationQuoteResponse {
	return StationQuoteResponse{
		Station: q.Station,
		KgPrice: money(q.KgPrice),
		Weight:  money(q.Weight),
		Total:   money(q.Total),
	}
}
