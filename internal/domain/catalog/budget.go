package catalog

import (
	"strings"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchLimit caps the number of search results
const SearchLimit = 5

var hundred = decimal.NewFromInt(100)

// ProductBudget is a product's cost and sale price. Profit and margin are
// always derived from the two, never stored independently.
type ProductBudget struct {
	ID    string
	Name  string
	Cost  decimal.Decimal
	Price decimal.Decimal
}

// Identity implements shared.Identified
func (p ProductBudget) Identity() string { return p.ID }

// NewProductBudget validates and creates a budget. Price must be positive.
func NewProductBudget(name string, cost, price decimal.Decimal) (ProductBudget, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ProductBudget{}, shared.InvalidInput("product name is required")
	}
	if !price.IsPositive() {
		return ProductBudget{}, shared.InvalidInput("price must be greater than zero")
	}
	return ProductBudget{
		ID:    uuid.NewString(),
		Name:  name,
		Cost:  cost,
		Price: price,
	}, nil
}

// Profit is price minus cost
func (p ProductBudget) Profit() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// MarginPercent is profit over price as a percentage. Zero when price is zero.
func (p ProductBudget) MarginPercent() decimal.Decimal {
	if p.Price.IsZero() {
		return decimal.Zero
	}
	return p.Profit().Div(p.Price).Mul(hundred)
}

// Band classifies the budget's margin
func (p ProductBudget) Band() MarginBand {
	return BandFor(p.MarginPercent())
}

// MarginBand is a coarse classification of a margin percentage
type MarginBand string

const (
	BandLow       MarginBand = "low"
	BandModerate  MarginBand = "moderate"
	BandHealthy   MarginBand = "healthy"
	BandExcellent MarginBand = "excellent"
)

// BandFor returns the band for a margin percentage
func BandFor(margin decimal.Decimal) MarginBand {
	switch {
	case margin.LessThan(decimal.NewFromInt(20)):
		return BandLow
	case margin.LessThan(decimal.NewFromInt(40)):
		return BandModerate
	case margin.LessThan(decimal.NewFromInt(60)):
		return BandHealthy
	default:
		return BandExcellent
	}
}

// Search returns up to SearchLimit budgets whose name contains query,
// ignoring case. An empty query matches nothing.
func Search(budgets []ProductBudget, query string) []ProductBudget {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	out := make([]ProductBudget, 0, SearchLimit)
	for _, b := range budgets {
		if strings.Contains(strings.ToLower(b.Name), q) {
			out = append(out, b)
			if len(out) == SearchLimit {
				break
			}
		}
	}
	return out
}
