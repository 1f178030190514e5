package document

import (
	"context"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/partner"
	"github.com/fintrak/backend/internal/domain/trade"
)

// Repository persists the shared document one field at a time
type Repository interface {
	// Load reads the whole document. Absent fields load empty; an absent
	// comanda field loads as a fresh pool.
	Load(ctx context.Context) (*Snapshot, error)

	SaveEntries(ctx context.Context, entries []finance.FinancialEntry) error
	SaveBills(ctx context.Context, bills []finance.Bill) error
	SaveDebts(ctx context.Context, debts []partner.DebtNote) error
	SaveEnergy(ctx context.Context, readings []metering.EnergyReading) error
	SaveComandas(ctx context.Context, comandas []trade.Comanda) error
	SaveBudgets(ctx context.Context, budgets []catalog.ProductBudget) error
}

// WriterLock serializes writers across processes. Acquire blocks until the
// lock is held or ctx ends; the returned func releases it.
type WriterLock interface {
	Acquire(ctx context.Context) (release func(context.Context) error, err error)
}
