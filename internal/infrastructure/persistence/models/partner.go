package models

import "github.com/fintrak/backend/internal/domain/partner"

// DebtModel is the stored shape of a debt note
type DebtModel struct {
	ID          string  `json:"id"`
	ClientName  string  `json:"clientName"`
	Value       float64 `json:"value"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// ToDomain converts DebtModel to a domain DebtNote
func (m *DebtModel) ToDomain() partner.DebtNote {
	return partner.DebtNote{
		ID:          m.ID,
		ClientName:  m.ClientName,
		Value:       toDecimal(m.Value),
		Date:        toDay(m.Date),
		Description: m.Description,
	}
}

// DebtModelFromDomain creates a DebtModel from a domain DebtNote
func DebtModelFromDomain(n partner.DebtNote) DebtModel {
	return DebtModel{
		ID:          n.ID,
		ClientName:  n.ClientName,
		Value:       fromDecimal(n.Value),
		Date:        n.Date.Stored(),
		Description: n.Description,
	}
}
