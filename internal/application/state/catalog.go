package state

import (
	"context"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
)

// Budgets lists catalogue products, newest first
func (c *Controller) Budgets(ctx context.Context) ([]catalog.ProductBudget, error) {
	s, err := c.view(ctx)
	if err != nil {
		return nil, err
	}
	return s.Budgets, nil
}

// AddBudget adds a product to the margin catalogue
func (c *Controller) AddBudget(ctx context.Context, name, cost, price string) (catalog.ProductBudget, error) {
	costValue, err := valueobject.ParseAmount(cost)
	if err != nil {
		return catalog.ProductBudget{}, shared.InvalidInput("cost: " + err.Error())
	}
	priceValue, err := valueobject.ParseAmount(price)
	if err != nil {
		return catalog.ProductBudget{}, shared.InvalidInput("price: " + err.Error())
	}
	budget, err := catalog.NewProductBudget(name, costValue, priceValue)
	if err != nil {
		return catalog.ProductBudget{}, err
	}

	err = c.mutate(ctx, "add_budget", func(next *document.Snapshot) (string, error) {
		next.Budgets = shared.Prepend(next.Budgets, budget)
		return document.FieldBudgets, nil
	})
	return budget, err
}

// DeleteBudget removes a catalogue product
func (c *Controller) DeleteBudget(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_budget", func(next *document.Snapshot) (string, error) {
		budgets, ok := shared.RemoveByID(next.Budgets, id)
		if !ok {
			return "", shared.NotFound("product not found")
		}
		next.Budgets = budgets
		return document.FieldBudgets, nil
	})
}

// SearchCatalogue finds products by name
func (c *Controller) SearchCatalogue(ctx context.Context, query string) ([]catalog.ProductBudget, error) {
	s, err := c.view(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Search(s.Budgets, query), nil
}

// ImportBudgets merges a batch of products into the catalogue in one write
func (c *Controller) ImportBudgets(ctx context.Context, incoming []catalog.ProductBudget, policy catalog.ConflictPolicy) (catalog.MergeResult, error) {
	var result catalog.MergeResult
	err := c.mutate(ctx, "import_budgets", func(next *document.Snapshot) (string, error) {
		result = catalog.Merge(next.Budgets, incoming, policy)
		if !result.Changed() {
			return "", nil
		}
		next.Budgets = result.Budgets
		return document.FieldBudgets, nil
	})
	return result, err
}
