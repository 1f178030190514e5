package persistence

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/partner"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/fintrak/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentGateway_LoadEmptyDocument(t *testing.T) {
	gw := NewDocumentGateway(NewMemoryDocumentStore())

	snap, err := gw.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, snap.Entries)
	assert.Empty(t, snap.Bills)
	assert.Empty(t, snap.Debts)
	assert.Empty(t, snap.Energy)
	assert.Empty(t, snap.Budgets)
	assert.Len(t, snap.Comandas, trade.PoolSize, "absent comandas load as a fresh pool")
}

func TestDocumentGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	gw := NewDocumentGateway(store)
	day := valueobject.MustParseDay("2024-04-01")

	entry := finance.FinancialEntry{
		ID: "e1", Date: day,
		CashIn: decimal.RequireFromString("10.5"), PixIn: decimal.NewFromInt(2),
		Exit: decimal.NewFromInt(1), Percentage: decimal.RequireFromString("0.4"),
	}
	require.NoError(t, gw.SaveEntries(ctx, []finance.FinancialEntry{entry}))
	require.NoError(t, gw.SaveBills(ctx, []finance.Bill{{ID: "b1", Description: "Luz", Value: decimal.NewFromInt(80), DueDate: day}}))
	require.NoError(t, gw.SaveDebts(ctx, []partner.DebtNote{{ID: "d1", ClientName: "Ana", Value: decimal.NewFromInt(7), Date: day}}))
	require.NoError(t, gw.SaveEnergy(ctx, []metering.EnergyReading{{ID: "r1", MinReading: decimal.NewFromInt(1), MaxReading: decimal.NewFromInt(9), Factor: decimal.NewFromInt(1)}}))
	require.NoError(t, gw.SaveBudgets(ctx, []catalog.ProductBudget{{ID: "p1", Name: "Bolo", Cost: decimal.NewFromInt(6), Price: decimal.NewFromInt(10)}}))
	pool := trade.NewPool()
	pool[0], _ = pool[0].WithClient("Ana").AddItem("Coca", decimal.NewFromInt(5))
	require.NoError(t, gw.SaveComandas(ctx, pool))

	snap, err := gw.Load(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "e1", snap.Entries[0].ID)
	assert.Equal(t, day, snap.Entries[0].Date)
	assert.True(t, snap.Entries[0].CashIn.Equal(decimal.RequireFromString("10.5")))
	require.Len(t, snap.Bills, 1)
	assert.Equal(t, "Luz", snap.Bills[0].Description)
	require.Len(t, snap.Debts, 1)
	assert.Equal(t, "Ana", snap.Debts[0].ClientName)
	require.Len(t, snap.Energy, 1)
	assert.True(t, snap.Energy[0].Consumption().Equal(decimal.NewFromInt(8)))
	require.Len(t, snap.Budgets, 1)
	assert.True(t, snap.Budgets[0].MarginPercent().Equal(decimal.NewFromInt(40)))
	require.Len(t, snap.Comandas, trade.PoolSize)
	assert.Equal(t, "Ana", snap.Comandas[0].ClientName)
	assert.True(t, snap.Comandas[0].Total().Equal(decimal.NewFromInt(5)))
}

func TestDocumentGateway_WritesStoredShape(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	gw := NewDocumentGateway(store)

	require.NoError(t, gw.SaveBudgets(ctx, []catalog.ProductBudget{{ID: "p1", Name: "Bolo", Cost: decimal.NewFromInt(6), Price: decimal.NewFromInt(10)}}))

	raw, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"p1","name":"Bolo","cost":6,"price":10,"profit":4,"marginPercent":40}]`,
		string(raw["budgets"]))
}

func TestDocumentGateway_SaveOnlyTouchesOneField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{"debts": json.RawMessage(`[{"id":"keep"}]`)}))
	gw := NewDocumentGateway(store)

	require.NoError(t, gw.SaveBills(ctx, nil))

	raw, err := store.Fetch(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw["bills"]))
	assert.JSONEq(t, `[{"id":"keep"}]`, string(raw["debts"]))
}

func TestDocumentGateway_CorruptField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{"entries": json.RawMessage(`{"not":"a list"}`)}))

	_, err := NewDocumentGateway(store).Load(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"entries"`)
}

func TestDocumentGateway_KeepsLegacyDateOnRewrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{
		"entries": json.RawMessage(`[{"id":"old","date":"05/01/2024","cashIn":10,"percentage":0.4}]`),
	}))
	gw := NewDocumentGateway(store)

	snap, err := gw.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	assert.True(t, snap.Entries[0].Date.IsZero())

	today := finance.NewFinancialEntry(valueobject.MustParseDay("2024-03-15"))
	require.NoError(t, gw.SaveEntries(ctx, append([]finance.FinancialEntry{today}, snap.Entries...)))

	raw, err := store.Fetch(ctx)
	require.NoError(t, err)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw["entries"], &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, "2024-03-15", stored[0]["date"])
	assert.Equal(t, "old", stored[1]["id"])
	assert.Equal(t, "05/01/2024", stored[1]["date"])
}

func TestDocumentGateway_NullComandasSeedPool(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDocumentStore()
	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{"comandas": json.RawMessage(`null`)}))

	snap, err := NewDocumentGateway(store).Load(ctx)

	require.NoError(t, err)
	assert.Len(t, snap.Comandas, trade.PoolSize)
}

func TestDocumentGateway_Export(t *testing.T) {
	ctx := context.Background()
	gw := NewDocumentGateway(NewMemoryDocumentStore())
	require.NoError(t, gw.SaveBills(ctx, []finance.Bill{{ID: "b1", Description: "Luz", DueDate: valueobject.MustParseDay("2024-05-10")}}))

	data, err := gw.Export(ctx)
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc["bills"], 1)
	assert.Equal(t, "Luz", doc["bills"][0]["description"])
	assert.NotContains(t, doc, "entries")
}
