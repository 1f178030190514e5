package finance

import (
	"strings"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill is an account payable with a due date
type Bill struct {
	ID          string
	Description string
	Value       decimal.Decimal
	DueDate     valueobject.Day
	Paid        bool
}

// Identity implements shared.Identified
func (b Bill) Identity() string { return b.ID }

// NewBill validates and creates an unpaid bill
func NewBill(description string, value decimal.Decimal, dueDate valueobject.Day) (Bill, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Bill{}, shared.InvalidInput("bill description is required")
	}
	if dueDate.IsZero() {
		return Bill{}, shared.InvalidInput("bill due date is required")
	}
	return Bill{
		ID:          uuid.NewString(),
		Description: description,
		Value:       value,
		DueDate:     dueDate,
	}, nil
}

// TogglePaid flips the paid flag of the bill with id
func TogglePaid(bills []Bill, id string) ([]Bill, error) {
	i := shared.IndexOf(bills, id)
	if i < 0 {
		return bills, shared.NotFound("bill not found")
	}
	out := append([]Bill(nil), bills...)
	out[i].Paid = !out[i].Paid
	return out, nil
}
