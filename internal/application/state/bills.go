package state

import (
	"context"

	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
)

// Bills lists bills in stored order, newest first
func (c *Controller) Bills(ctx context.Context) ([]finance.Bill, error) {
	s, err := c.view(ctx)
	if err != nil {
		return nil, err
	}
	return s.Bills, nil
}

// AddBill records an unpaid bill
func (c *Controller) AddBill(ctx context.Context, description, value, dueDate string) (finance.Bill, error) {
	amount, err := valueobject.ParseAmount(value)
	if err != nil {
		return finance.Bill{}, shared.InvalidInput(err.Error())
	}
	due, err := valueobject.ParseDay(dueDate)
	if err != nil {
		return finance.Bill{}, shared.InvalidInput("due date: " + err.Error())
	}
	bill, err := finance.NewBill(description, amount, due)
	if err != nil {
		return finance.Bill{}, err
	}

	err = c.mutate(ctx, "add_bill", func(next *document.Snapshot) (string, error) {
		next.Bills = shared.Prepend(next.Bills, bill)
		return document.FieldBills, nil
	})
	return bill, err
}

// ToggleBill flips the paid flag
func (c *Controller) ToggleBill(ctx context.Context, id string) (finance.Bill, error) {
	var bill finance.Bill
	err := c.mutate(ctx, "toggle_bill", func(next *document.Snapshot) (string, error) {
		bills, err := finance.TogglePaid(next.Bills, id)
		if err != nil {
			return "", err
		}
		next.Bills = bills
		bill = bills[shared.IndexOf(bills, id)]
		return document.FieldBills, nil
	})
	return bill, err
}

// DeleteBill removes a bill
func (c *Controller) DeleteBill(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete_bill", func(next *document.Snapshot) (string, error) {
		bills, ok := shared.RemoveByID(next.Bills, id)
		if !ok {
			return "", shared.NotFound("bill not found")
		}
		next.Bills = bills
		return document.FieldBills, nil
	})
}
