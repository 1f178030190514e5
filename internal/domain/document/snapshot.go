package document

import (
	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/partner"
	"github.com/fintrak/backend/internal/domain/trade"
)

// Field names of the shared document
const (
	FieldEntries  = "entries"
	FieldBills    = "bills"
	FieldDebts    = "debts"
	FieldEnergy   = "energy"
	FieldComandas = "comandas"
	FieldBudgets  = "budgets"
)

// Fields lists every top-level field in document order
var Fields = []string{FieldEntries, FieldBills, FieldDebts, FieldEnergy, FieldComandas, FieldBudgets}

// Snapshot is the whole business state held in the shared document
type Snapshot struct {
	Entries  []finance.FinancialEntry
	Bills    []finance.Bill
	Debts    []partner.DebtNote
	Energy   []metering.EnergyReading
	Comandas []trade.Comanda
	Budgets  []catalog.ProductBudget
}

// NewSnapshot returns an empty state with a seeded comanda pool
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Entries:  []finance.FinancialEntry{},
		Bills:    []finance.Bill{},
		Debts:    []partner.DebtNote{},
		Energy:   []metering.EnergyReading{},
		Comandas: trade.NewPool(),
		Budgets:  []catalog.ProductBudget{},
	}
}

// Clone returns a copy whose slices can be modified independently
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Entries:  append([]finance.FinancialEntry{}, s.Entries...),
		Bills:    append([]finance.Bill{}, s.Bills...),
		Debts:    append([]partner.DebtNote{}, s.Debts...),
		Energy:   append([]metering.EnergyReading{}, s.Energy...),
		Comandas: make([]trade.Comanda, len(s.Comandas)),
		Budgets:  append([]catalog.ProductBudget{}, s.Budgets...),
	}
	for i, cm := range s.Comandas {
		cm.Items = append([]trade.ComandaItem{}, cm.Items...)
		c.Comandas[i] = cm
	}
	return c
}
