package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CalculatedEntry is a FinancialEntry with its derived totals.
// It is never stored; Calculate produces it on every read.
type CalculatedEntry struct {
	FinancialEntry
	TotalEntry decimal.Decimal
	Balance    decimal.Decimal
	Markup     decimal.Decimal
}

// Calculate derives totals for one entry. Zero values stand in for missing
// amounts and no rounding is applied.
func Calculate(entry FinancialEntry) CalculatedEntry {
	total := entry.CashIn.Add(entry.PixIn).Add(entry.CardIn)
	balance := total.Sub(entry.Exit)
	return CalculatedEntry{
		FinancialEntry: entry,
		TotalEntry:     total,
		Balance:        balance,
		Markup:         balance.Mul(entry.Percentage),
	}
}

// CalculateAll derives every entry and orders the result by date, most recent first.
// Entries sharing a date keep their input order.
func CalculateAll(entries []FinancialEntry) []CalculatedEntry {
	out := make([]CalculatedEntry, len(entries))
	for i, e := range entries {
		out[i] = Calculate(e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// DailyFigures are the values shown while operating the day's till
type DailyFigures struct {
	LiquidValue decimal.Decimal
	MarkupValue decimal.Decimal
	RealBalance decimal.Decimal
}

// FiguresFor computes the entry console figures for a day
func FiguresFor(entry FinancialEntry) DailyFigures {
	liquid := entry.CashIn.Add(entry.PixIn).Add(entry.CardIn).Sub(entry.Exit)
	markup := liquid.Mul(entry.Percentage)
	return DailyFigures{
		LiquidValue: liquid,
		MarkupValue: markup,
		RealBalance: liquid.Sub(markup),
	}
}
