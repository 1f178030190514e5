package finance

import (
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the dashboard totals across every ledger row
type Summary struct {
	TotalEntry  decimal.Decimal
	TotalExit   decimal.Decimal
	TotalMarkup decimal.Decimal
	TotalCash   decimal.Decimal
	TotalPix    decimal.Decimal
	TotalCard   decimal.Decimal
	Days        int
}

// Net is entries minus exits
func (s Summary) Net() decimal.Decimal {
	return s.TotalEntry.Sub(s.TotalExit)
}

// AverageMarkupPercent is total markup over total entries, as a percentage.
// With no entries the divisor is 1 so the result stays finite.
func (s Summary) AverageMarkupPercent() decimal.Decimal {
	divisor := s.TotalEntry
	if divisor.IsZero() {
		divisor = decimal.NewFromInt(1)
	}
	return s.TotalMarkup.Div(divisor).Mul(hundred)
}

// Summarize folds calculated entries into dashboard totals
func Summarize(entries []CalculatedEntry) Summary {
	var s Summary
	for _, e := range entries {
		s.TotalEntry = s.TotalEntry.Add(e.TotalEntry)
		s.TotalExit = s.TotalExit.Add(e.Exit)
		s.TotalMarkup = s.TotalMarkup.Add(e.Markup)
		s.TotalCash = s.TotalCash.Add(e.CashIn)
		s.TotalPix = s.TotalPix.Add(e.PixIn)
		s.TotalCard = s.TotalCard.Add(e.CardIn)
	}
	s.Days = len(entries)
	return s
}

// SeriesPoint is one day of the dashboard chart
type SeriesPoint struct {
	Date   valueobject.Day
	Total  decimal.Decimal
	Exit   decimal.Decimal
	Markup decimal.Decimal
}

// Series returns chart points in chronological order. Input is expected in
// the most-recent-first order produced by CalculateAll.
func Series(entries []CalculatedEntry) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		points = append(points, SeriesPoint{
			Date:   e.Date,
			Total:  e.TotalEntry,
			Exit:   e.Exit,
			Markup: e.Markup,
		})
	}
	return points
}
