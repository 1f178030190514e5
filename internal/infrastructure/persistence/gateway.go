package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/partner"
	"github.com/fintrak/backend/internal/domain/trade"
	"github.com/fintrak/backend/internal/infrastructure/persistence/models"
	"github.com/fintrak/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// DocumentGateway maps the shared document onto domain records
type DocumentGateway struct {
	store DocumentStore
}

// NewDocumentGateway creates a gateway over store
func NewDocumentGateway(store DocumentStore) *DocumentGateway {
	return &DocumentGateway{store: store}
}

// Load implements document.Repository
func (g *DocumentGateway) Load(ctx context.Context) (snap *document.Snapshot, err error) {
	ctx, span := telemetry.StartSpan(ctx, "document.load")
	defer func() { telemetry.End(span, err) }()

	raw, err := g.store.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	snap = document.NewSnapshot()

	var entries []models.EntryModel
	if err := decodeField(raw, document.FieldEntries, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		snap.Entries = append(snap.Entries, entries[i].ToDomain())
	}

	var bills []models.BillModel
	if err := decodeField(raw, document.FieldBills, &bills); err != nil {
		return nil, err
	}
	for i := range bills {
		snap.Bills = append(snap.Bills, bills[i].ToDomain())
	}

	var debts []models.DebtModel
	if err := decodeField(raw, document.FieldDebts, &debts); err != nil {
		return nil, err
	}
	for i := range debts {
		snap.Debts = append(snap.Debts, debts[i].ToDomain())
	}

	var readings []models.EnergyReadingModel
	if err := decodeField(raw, document.FieldEnergy, &readings); err != nil {
		return nil, err
	}
	for i := range readings {
		snap.Energy = append(snap.Energy, readings[i].ToDomain())
	}

	var budgets []models.BudgetModel
	if err := decodeField(raw, document.FieldBudgets, &budgets); err != nil {
		return nil, err
	}
	for i := range budgets {
		snap.Budgets = append(snap.Budgets, budgets[i].ToDomain())
	}

	// absent or null comandas keep the seeded pool
	var comandas []models.ComandaModel
	if err := decodeField(raw, document.FieldComandas, &comandas); err != nil {
		return nil, err
	}
	if comandas != nil {
		snap.Comandas = make([]trade.Comanda, 0, len(comandas))
		for i := range comandas {
			snap.Comandas = append(snap.Comandas, comandas[i].ToDomain())
		}
	}

	span.SetAttributes(attribute.Int("document.fields", len(raw)))
	return snap, nil
}

func decodeField(raw map[string]json.RawMessage, field string, dst any) error {
	data, ok := raw[field]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode document field %q: %w", field, err)
	}
	return nil
}

// SaveEntries implements document.Repository
func (g *DocumentGateway) SaveEntries(ctx context.Context, entries []finance.FinancialEntry) error {
	out := make([]models.EntryModel, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.EntryModelFromDomain(e))
	}
	return g.save(ctx, document.FieldEntries, out)
}

// SaveBills implements document.Repository
func (g *DocumentGateway) SaveBills(ctx context.Context, bills []finance.Bill) error {
	out := make([]models.BillModel, 0, len(bills))
	for _, b := range bills {
		out = append(out, models.BillModelFromDomain(b))
	}
	return g.save(ctx, document.FieldBills, out)
}

// SaveDebts implements document.Repository
func (g *DocumentGateway) SaveDebts(ctx context.Context, debts []partner.DebtNote) error {
	out := make([]models.DebtModel, 0, len(debts))
	for _, d := range debts {
		out = append(out, models.DebtModelFromDomain(d))
	}
	return g.save(ctx, document.FieldDebts, out)
}

// SaveEnergy implements document.Repository
func (g *DocumentGateway) SaveEnergy(ctx context.Context, readings []metering.EnergyReading) error {
	out := make([]models.EnergyReadingModel, 0, len(readings))
	for _, r := range readings {
		out = append(out, models.EnergyReadingModelFromDomain(r))
	}
	return g.save(ctx, document.FieldEnergy, out)
}

// SaveComandas implements document.Repository
func (g *DocumentGateway) SaveComandas(ctx context.Context, comandas []trade.Comanda) error {
	out := make([]models.ComandaModel, 0, len(comandas))
	for _, c := range comandas {
		out = append(out, models.ComandaModelFromDomain(c))
	}
	return g.save(ctx, document.FieldComandas, out)
}

// SaveBudgets implements document.Repository
func (g *DocumentGateway) SaveBudgets(ctx context.Context, budgets []catalog.ProductBudget) error {
	out := make([]models.BudgetModel, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, models.BudgetModelFromDomain(b))
	}
	return g.save(ctx, document.FieldBudgets, out)
}

func (g *DocumentGateway) save(ctx context.Context, field string, value any) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "document.save", attribute.String("document.field", field))
	defer func() { telemetry.End(span, err) }()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode document field %q: %w", field, err)
	}
	return g.store.Merge(ctx, map[string]json.RawMessage{field: data})
}

var _ document.Repository = (*DocumentGateway)(nil)

// Export returns the whole stored document as one JSON object keyed by field
func (g *DocumentGateway) Export(ctx context.Context) (data []byte, err error) {
	ctx, span := telemetry.StartSpan(ctx, "document.export")
	defer func() { telemetry.End(span, err) }()

	raw, err := g.store.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	data, err = json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
