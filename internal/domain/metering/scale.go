package metering

import "github.com/shopspring/decimal"

// StationCount is the number of weighing stations at the counter
const StationCount = 4

// Quote prices a weighed item from its price per kilogram
func Quote(kgPrice, weight decimal.Decimal) decimal.Decimal {
	return kgPrice.Mul(weight)
}

// StationQuote is the price for one weighing station
type StationQuote struct {
	Station int
	KgPrice decimal.Decimal
	Weight  decimal.Decimal
	Total   decimal.Decimal
}

// QuoteStations prices up to StationCount stations; extra inputs are ignored.
// Stations are numbered from 1 in input order.
func QuoteStations(inputs [][2]decimal.Decimal) []StationQuote {
	n := min(len(inputs), StationCount)
	out := make([]StationQuote, n)
	for i := 0; i < n; i++ {
		out[i] = StationQuote{
			Station: i + 1,
			KgPrice: inputs[i][0],
			Weight:  inputs[i][1],
			Total:   Quote(inputs[i][0], inputs[i][1]),
		}
	}
	return out
}
