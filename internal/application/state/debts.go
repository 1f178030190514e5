package state

import (
	"context"

	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/partner"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
)

// Debts lists fiado notes, newest first
func (c *Controller) Debts(ctx context.Context) ([]partner.DebtNote, error) {
	s, err := c.view(ctx)
	if err != nil {
		return nil, err
	}
	return s.Debts, nil
}

// AddDebt records a customer tab dated today
func (c *Controller) AddDebt(ctx context.Context, clientName, value, description string) (partner.DebtNote, error) {
	amount, err := valueobject.ParseAmount(value)
	if err != nil {
		return partner.DebtNote{}, shared.InvalidInput(err.Error())
	}
	note, err := partner.NewDebtNote(clientName, amount, description, c.today())
	if err != nil {
		return partner.DebtNote{}, err
	}

	err = c.mutate(ctx, "add_debt", func(next *document.Snapshot) (string, error) {
		next.Debts = shared.Prepend(next.Debts, note)
		return document.FieldDebts, nil
	})
	return note, err
}

// DeleteDebt removes a debt note
func (c *Controller) DeleteDebt(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_debt", func(next *document.Snapshot) (string, error) {
		debts, ok := shared.RemoveByID(next.Debts, id)
		if !ok {
			return "", shared.NotFound("debt not found")
		}
		next.Debts = debts
		return document.FieldDebts, nil
	})
}
