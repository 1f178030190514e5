package partner

import (
	"strings"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtNote records a purchase a client took on credit (fiado)
type DebtNote struct {
	ID          string
	ClientName  string
	Value       decimal.Decimal
	Date        valueobject.Day
	Description string
}

// Identity implements shared.Identified
func (n DebtNote) Identity() string { return n.ID }

// NewDebtNote creates a debt dated on the given day.
// The client name is required and the value must be positive.
func NewDebtNote(clientName string, value decimal.Decimal, description string, on valueobject.Day) (DebtNote, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return DebtNote{}, shared.InvalidInput("client name is required")
	}
	if !value.IsPositive() {
		return DebtNote{}, shared.InvalidInput("debt value must be greater than zero")
	}
	if on.IsZero() {
		return DebtNote{}, shared.InvalidInput("debt date is required")
	}
	return DebtNote{
		ID:          uuid.NewString(),
		ClientName:  clientName,
		Value:       value,
		Date:        on,
		Description: strings.TrimSpace(description),
	}, nil
}

// Outstanding sums the value of all notes, optionally for one client.
// An empty clientName sums every note; matching ignores case.
func Outstanding(notes []DebtNote, clientName string) decimal.Decimal {
	total := decimal.Zero
	for _, n := range notes {
		if clientName != "" && !strings.EqualFold(n.ClientName, clientName) {
			continue
		}
		total = total.Add(n.Value)
	}
	return total
}
