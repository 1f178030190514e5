package models

import (
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// toDecimal converts a stored JSON number to a decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// fromDecimal converts a decimal to a JSON number
func fromDecimal(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// toDay parses a stored date. Unparseable values load as an unparsed day
// so that one bad row does not make the whole document unreadable, and the
// original text is written back by Day.Stored.
func toDay(s string) valueobject.Day {
	d, err := valueobject.ParseDay(s)
	if err != nil {
		return valueobject.UnparsedDay(s)
	}
	return d
}
