package models

import "github.com/fintrak/backend/internal/domain/catalog"

// BudgetModel is the stored shape of a product budget.
// Profit and MarginPercent are written for readers of the raw document
// and ignored on load.
type BudgetModel struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	Price         float64 `json:"price"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"marginPercent"`
}

// ToDomain converts BudgetModel to a domain ProductBudget
func (m *BudgetModel) ToDomain() catalog.ProductBudget {
	return catalog.ProductBudget{
		ID:    m.ID,
		Name:  m.Name,
		Cost:  toDecimal(m.Cost),
		Price: toDecimal(m.Price),
	}
}

// BudgetModelFromDomain creates a BudgetModel from a domain ProductBudget
func BudgetModelFromDomain(p catalog.ProductBudget) BudgetModel {
	return BudgetModel{
		ID:            p.ID,
		Name:          p.Name,
		Cost:          fromDecimal(p.Cost),
		Price:         fromDecimal(p.Price),
		Profit:        fromDecimal(p.Profit()),
		MarginPercent: fromDecimal(p.MarginPercent()),
	}
}
