package handler

import (
	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/domain/finance"
)

// AddValueRequest adds money to one channel of today's entry
type AddValueRequest struct {
	Channel string `json:"channel" binding:"required,oneof=cash pix card exit"`
	Amount  Amount `json:"amount" binding:"required"`
}

// UpdateMarkupRequest sets today's markup as a whole percentage
type UpdateMarkupRequest struct {
	Percent Amount `json:"percent" binding:"required"`
}

// VaultQuery filters the vault by an inclusive date range
type VaultQuery struct {
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}

// EntryResponse is a ledger row with its derived totals
type EntryResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	DisplayDate string  `json:"displayDate"`
	CashIn      float64 `json:"cashIn"`
	PixIn       float64 `json:"pixIn"`
	CardIn      float64 `json:"cardIn"`
	Exit        float64 `json:"exit"`
	Percentage  float64 `json:"percentage"`
	TotalEntry  float64 `json:"totalEntry"`
	Balance     float64 `json:"balance"`
	Markup      float64 `json:"markup"`
}

func toEntryResponse(e finance.CalculatedEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		Date:        e.Date.String(),
		DisplayDate: e.Date.Display(),
		CashIn:      money(e.CashIn),
		PixIn:       money(e.PixIn),
		CardIn:      money(e.CardIn),
		Exit:        money(e.Exit),
		Percentage:  money(e.Percentage),
		TotalEntry:  money(e.TotalEntry),
		Balance:     money(e.Balance),
		Markup:      money(e.Markup),
	}
}

func toEntryResponses(entries []finance.CalculatedEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return out
}

// FiguresResponse are the live figures of the entry console
type FiguresResponse struct {
	LiquidValue float64 `json:"liquidValue"`
	MarkupValue float64 `json:"markupValue"`
	RealBalance float64 `json:"realBalance"`
}

// TodayResponse is today's entry as shown on the console
type TodayResponse struct {
	Entry   EntryResponse   `json:"entry"`
	Figures FiguresResponse `json:"figures"`
	Unsaved bool            `json:"unsaved"`
}

func toTodayResponse(v state.TodayView) TodayResponse {
	return TodayResponse{
		Entry: toEntryResponse(finance.Calculate(v.Entry)),
		Figures: FiguresResponse{
			LiquidValue: money(v.Figures.LiquidValue),
			MarkupValue: money(v.Figures.MarkupValue),
			RealBalance: money(v.Figures.RealBalance),
		},
		Unsaved: v.Unsaved,
	}
}

// VaultResponse totals a date range
type VaultResponse struct {
	Start      string  `json:"start,omitempty"`
	End        string  `json:"end,omitempty"`
	TotalEntry float64 `json:"totalEntry"`
	TotalExit  float64 `json:"totalExit"`
	Balance    float64 `json:"balance"`
	Count      int     `json:"count"`
}

// SummaryResponse holds the dashboard totals
type SummaryResponse struct {
	TotalEntry           float64 `json:"totalEntry"`
	TotalExit            float64 `json:"totalExit"`
	TotalMarkup          float64 `json:"totalMarkup"`
	Net                  float64 `json:"net"`
	AverageMarkupPercent float64 `json:"averageMarkupPercent"`
	TotalCash            float64 `json:"totalCash"`
	TotalPix             float64 `json:"totalPix"`
	TotalCard            float64 `json:"totalCard"`
	Days                 int     `json:"days"`
}

// SeriesPointResponse is one day of the dashboard chart
type SeriesPointResponse struct {
	Date        string  `json:"date"`
	DisplayDate string  `json:"displayDate"`
	Total       float64 `json:"total"`
	Exit        float64 `json:"exit"`
	Markup      float64 `json:"markup"`
}

// DashboardResponse is the overview page
type DashboardResponse struct {
	Summary SummaryResponse       `json:"summary"`
	Series  []SeriesPointResponse `json:"series"`
}

func toDashboardResponse(d state.Dashboard) DashboardResponse {
	s := d.Summary
	series := make([]SeriesPointResponse, len(d.Series))
	for i, p := range d.Series {
		series[i] = SeriesPointResponse{
			Date:        p.Date.String(),
			DisplayDate: p.Date.Display(),
			Total:       money(p.Total),
			Exit:        money(p.Exit),
			Markup:      money(p.Markup),
		}
	}
	return DashboardResponse{
		Summary: SummaryResponse{
			TotalEntry:           money(s.TotalEntry),
			TotalExit:            money(s.TotalExit),
			TotalMarkup:          money(s.TotalMarkup),
			Net:                  money(s.Net()),
			AverageMarkupPercent: money(s.AverageMarkupPercent()),
			TotalCash:            money(s.TotalCash),
			TotalPix:             money(s.TotalPix),
			TotalCard:            money(s.TotalCard),
			Days:                 s.Days,
		},
		Series: series,
	}
}
