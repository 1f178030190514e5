package models

import "github.com/fintrak/backend/internal/domain/finance"

// EntryModel is the stored shape of a ledger day
type EntryModel struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	CashIn     float64 `json:"cashIn"`
	PixIn      float64 `json:"pixIn"`
	CardIn     float64 `json:"cardIn"`
	Exit       float64 `json:"exit"`
	Percentage float64 `json:"percentage"`
}

// ToDomain converts EntryModel to a domain FinancialEntry
func (m *EntryModel) ToDomain() finance.FinancialEntry {
	return finance.FinancialEntry{
		ID:         m.ID,
		Date:       toDay(m.Date),
		CashIn:     toDecimal(m.CashIn),
		PixIn:      toDecimal(m.PixIn),
		CardIn:     toDecimal(m.CardIn),
		Exit:       toDecimal(m.Exit),
		Percentage: toDecimal(m.Percentage),
	}
}

// EntryModelFromDomain creates an EntryModel from a domain FinancialEntry
func EntryModelFromDomain(e finance.FinancialEntry) EntryModel {
	return EntryModel{
		ID:         e.ID,
		Date:       e.Date.Stored(),
		CashIn:     fromDecimal(e.CashIn),
		PixIn:      fromDecimal(e.PixIn),
		CardIn:     fromDecimal(e.CardIn),
		Exit:       fromDecimal(e.Exit),
		Percentage: fromDecimal(e.Percentage),
	}
}

// BillModel is the stored shape of a bill
type BillModel struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	DueDate     string  `json:"dueDate"`
	Paid        bool    `json:"paid"`
}

// ToDomain converts BillModel to a domain Bill
func (m *BillModel) ToDomain() finance.Bill {
	return finance.Bill{
		ID:          m.ID,
		Description: m.Description,
		Value:       toDecimal(m.Value),
		DueDate:     toDay(m.DueDate),
		Paid:        m.Paid,
	}
}

// BillModelFromDomain creates a BillModel from a domain Bill
func BillModelFromDomain(b finance.Bill) BillModel {
	return BillModel{
		ID:          b.ID,
		Description: b.Description,
		Value:       fromDecimal(b.Value),
		DueDate:     b.DueDate.Stored(),
		Paid:        b.Paid,
	}
}
