package finance

import (
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Range is an inclusive date filter. It only applies when both ends are set.
type Range struct {
	Start valueobject.Day
	End   valueobject.Day
}

// Active reports whether the range filters anything
func (r Range) Active() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Contains reports whether day falls inside the range; an inactive range contains every day
func (r Range) Contains(day valueobject.Day) bool {
	if !r.Active() {
		return true
	}
	return !day.Before(r.Start) && !day.After(r.End)
}

// VaultTotals aggregates ledger rows over a period
type VaultTotals struct {
	TotalEntry decimal.Decimal
	TotalExit  decimal.Decimal
	Balance    decimal.Decimal
	Count      int
}

// Vault sums total entry, exit and balance for the entries inside r
func Vault(entries []CalculatedEntry, r Range) VaultTotals {
	var v VaultTotals
	for _, e := range entries {
		if !r.Contains(e.Date) {
			continue
		}
		v.TotalEntry = v.TotalEntry.Add(e.TotalEntry)
		v.TotalExit = v.TotalExit.Add(e.Exit)
		v.Balance = v.Balance.Add(e.Balance)
		v.Count++
	}
	return v
}
