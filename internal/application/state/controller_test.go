package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/document"
	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/fintrak/backend/internal/domain/metering"
	"github.com/fintrak/backend/internal/domain/partner"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	"github.com/fintrak/backend/internal/domain/trade"
	"github.com/fintrak/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// MockRepository is a mock implementation of document.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context) (*document.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Snapshot), args.Error(1)
}

func (m *MockRepository) SaveEntries(ctx context.Context, entries []finance.FinancialEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockRepository) SaveBills(ctx context.Context, bills []finance.Bill) error {
	return m.Called(ctx, bills).Error(0)
}

func (m *MockRepository) SaveDebts(ctx context.Context, debts []partner.DebtNote) error {
	return m.Called(ctx, debts).Error(0)
}

func (m *MockRepository) SaveEnergy(ctx context.Context, readings []metering.EnergyReading) error {
	return m.Called(ctx, readings).Error(0)
}

func (m *MockRepository) SaveComandas(ctx context.Context, comandas []trade.Comanda) error {
	return m.Called(ctx, comandas).Error(0)
}

func (m *MockRepository) SaveBudgets(ctx context.Context, budgets []catalog.ProductBudget) error {
	return m.Called(ctx, budgets).Error(0)
}

// fakeLock counts acquisitions and can be told to refuse
type fakeLock struct {
	mu       sync.Mutex
	acquired int
	released int
	err      error
}

func (l *fakeLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newTestController(t *testing.T, opts ...Option) (*Controller, *persistence.DocumentGateway) {
	t.Helper()
	gw := persistence.NewDocumentGateway(persistence.NewMemoryDocumentStore())
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC)}, opts...)
	c, err := NewController(context.Background(), gw, opts...)
	require.NoError(t, err)
	return c, gw
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewController_LoadError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(nil, errors.New("store down"))

	c, err := NewController(context.Background(), repo)
	assert.Nil(t, c)
	assert.ErrorContains(t, err, "store down")
}

func TestController_Today_SynthesizesUnsavedEntry(t *testing.T) {
	c, gw := newTestController(t)
	ctx := context.Background()

	view, err := c.Today(ctx)
	require.NoError(t, err)
	assert.True(t, view.Unsaved)
	assert.Equal(t, valueobject.NewDay(2024, time.March, 15), view.Entry.Date)
	assert.True(t, view.Entry.Percentage.Equal(finance.DefaultMarkupPercentage))

	snap, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Entries)
}

func TestController_AddValue(t *testing.T) {
	c, gw := newTestController(t)
	ctx := context.Background()

	_, err := c.AddValue(ctx, "cash", "100")
	require.NoError(t, err)
	view, err := c.AddValue(ctx, "exit", "30,50")
	require.NoError(t, err)

	assert.False(t, view.Unsaved)
	assert.True(t, view.Entry.CashIn.Equal(dec("100")))
	assert.True(t, view.Entry.Exit.Equal(dec("30.5")))

	snap, err := gw.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, view.Entry.ID, snap.Entries[0].ID)
}

func TestController_AddValue_KeepsLegacyDates(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryDocumentStore()
	require.NoError(t, store.Merge(ctx, map[string]json.RawMessage{
		"entries": json.RawMessage(`[{"id":"old","date":"05/01/2024","cashIn":10,"percentage":0.4}]`),
	}))
	c, err := NewController(ctx, persistence.NewDocumentGateway(store),
		WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC))
	require.NoError(t, err)

	_, err = c.AddValue(ctx, "cash", "5")
	require.NoError(t, err)

	raw, err := store.Fetch(ctx)
	require.NoError(t, err)
	var stored []struct {
		ID   string `json:"id"`
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(raw["entries"], &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, "old", stored[1].ID)
	assert.Equal(t, "05/01/2024", stored[1].Date)
}

func TestController_AddValue_Invalid(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		channel string
		amount  string
	}{
		{"unknown channel", "bitcoin", "10"},
		{"not a number", "cash", "abc"},
		{"zero", "pix", "0"},
		{"negative", "card", "-5"},
		{"exponent", "cash", "1e400"},
		{"huge exponent", "cash", "1e20000000"},
		{"above cap", "exit", "5000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AddValue(ctx, tt.channel, tt.amount)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}

	history, err := c.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestController_UpdateMarkup(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	view, err := c.UpdateMarkup(ctx, "40")
	require.NoError(t, err)
	assert.True(t, view.Entry.Percentage.Equal(dec("0.4")))

	_, err = c.UpdateMarkup(ctx, "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestController_PersistFailureLeavesStateUnchanged(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(document.NewSnapshot(), nil)
	repo.On("SaveEntries", mock.Anything, mock.Anything).Return(errors.New("write failed"))

	c, err := NewController(context.Background(), repo, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	_, err = c.AddValue(context.Background(), "cash", "10")
	assert.ErrorContains(t, err, "write failed")

	history, err := c.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
	repo.AssertExpectations(t)
}

func TestController_DeleteEntry(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	view, err := c.AddValue(ctx, "pix", "20")
	require.NoError(t, err)

	assert.ErrorIs(t, c.DeleteEntry(ctx, "missing"), shared.ErrNotFound)
	require.NoError(t, c.DeleteEntry(ctx, view.Entry.ID))

	history, err := c.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestController_VaultAndDashboard(t *testing.T) {
	c, gw := newTestController(t)
	ctx := context.Background()

	require.NoError(t, gw.SaveEntries(ctx, []finance.FinancialEntry{
		{ID: "b", Date: valueobject.MustParseDay("2024-03-10"), CashIn: dec("200"), Exit: dec("50"), Percentage: dec("0.3")},
		{ID: "a", Date: valueobject.MustParseDay("2024-02-01"), PixIn: dec("100"), Percentage: dec("0.3")},
	}))
	require.NoError(t, c.Refresh(ctx))

	all, err := c.Vault(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Count)
	assert.True(t, all.TotalEntry.Equal(dec("300")))

	march, err := c.Vault(ctx, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, 1, march.Count)
	assert.True(t, march.Balance.Equal(dec("150")))

	_, err = c.Vault(ctx, "03/01/2024", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	dash, err := c.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Summary.Days)
	require.Len(t, dash.Series, 2)
	assert.Equal(t, "2024-02-01", dash.Series[0].Date.String())
}

func TestController_ExportHistory(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	_, err := c.AddValue(ctx, "cash", "10")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.ExportHistory(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestController_Bills(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	first, err := c.AddBill(ctx, "Aluguel", "1500", "2024-04-05")
	require.NoError(t, err)
	second, err := c.AddBill(ctx, "Luz", "230,40", "2024-04-10")
	require.NoError(t, err)

	bills, err := c.Bills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, second.ID, bills[0].ID)

	toggled, err := c.ToggleBill(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Paid)

	_, err = c.ToggleBill(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, c.DeleteBill(ctx, first.ID))
	assert.ErrorIs(t, c.DeleteBill(ctx, first.ID), shared.ErrNotFound)

	_, err = c.AddBill(ctx, "", "10", "2024-04-10")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = c.AddBill(ctx, "Agua", "10", "10/04/2024")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestController_Debts(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	note, err := c.AddDebt(ctx, "Maria", "45,90", "pão e leite")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", note.Date.String())

	_, err = c.AddDebt(ctx, "Maria", "0", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	debts, err := c.Debts(ctx)
	require.NoError(t, err)
	assert.Len(t, debts, 1)

	require.NoError(t, c.DeleteDebt(ctx, note.ID))
	assert.ErrorIs(t, c.DeleteDebt(ctx, note.ID), shared.ErrNotFound)
}

func TestController_Catalogue(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	coffee, err := c.AddBudget(ctx, "Café 500g", "12", "20")
	require.NoError(t, err)
	_, err = c.AddBudget(ctx, "Açúcar", "4", "6")
	require.NoError(t, err)

	_, err = c.AddBudget(ctx, "Sal", "1", "0")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	found, err := c.SearchCatalogue(ctx, "caf")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, coffee.ID, found[0].ID)

	require.NoError(t, c.DeleteBudget(ctx, coffee.ID))
	budgets, err := c.Budgets(ctx)
	require.NoError(t, err)
	assert.Len(t, budgets, 1)
}

func TestController_ImportBudgets(t *testing.T) {
	c, gw := newTestController(t)
	ctx := context.Background()

	_, err := c.AddBudget(ctx, "Café 500g", "12", "20")
	require.NoError(t, err)

	incoming := []catalog.ProductBudget{
		{ID: "p1", Name: "Pão", Cost: dec("0.5"), Price: dec("1")},
		{ID: "p2", Name: "café 500G", Cost: dec("13"), Price: dec("22")},
	}
	result, err := c.ImportBudgets(ctx, incoming, catalog.ConflictUpdate)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Updated)

	snap, err := gw.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Budgets, 2)
	assert.Equal(t, "Pão", snap.Budgets[0].Name)
	assert.True(t, snap.Budgets[1].Price.Equal(dec("22")))
}

func TestController_ImportBudgets_NothingToWrite(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(&document.Snapshot{
		Budgets:  []catalog.ProductBudget{{ID: "1", Name: "Pão", Price: dec("1")}},
		Comandas: trade.NewPool(),
	}, nil)
	c, err := NewController(context.Background(), repo, WithLocation(time.UTC))
	require.NoError(t, err)

	result, err := c.ImportBudgets(context.Background(),
		[]catalog.ProductBudget{{ID: "2", Name: "PÃO", Price: dec("2")}}, catalog.ConflictFail)

	require.NoError(t, err)
	assert.Equal(t, []int{0}, result.Conflicts)
	repo.AssertNotCalled(t, "SaveBudgets", mock.Anything, mock.Anything)
}

func TestController_Comandas(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	pool, err := c.Comandas(ctx)
	require.NoError(t, err)
	assert.Len(t, pool, trade.PoolSize)

	cm, err := c.SetComandaClient(ctx, 3, "João")
	require.NoError(t, err)
	assert.Equal(t, "João", cm.ClientName)

	cm, err = c.AddComandaItem(ctx, 3, "Coxinha", "6,50")
	require.NoError(t, err)
	require.Len(t, cm.Items, 1)

	cm, err = c.ModifyComandaQuantity(ctx, 3, cm.Items[0].ID, 2)
	require.NoError(t, err)
	assert.True(t, cm.Total().Equal(dec("19.5")))

	_, err = c.Comanda(ctx, 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = c.ClearComanda(ctx, 3, false)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	cm, err = c.ClearComanda(ctx, 3, true)
	require.NoError(t, err)
	assert.False(t, cm.IsOpen())
}

func TestController_ReceiptHTML(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	_, err := c.AddComandaItem(ctx, 1, "Pastel", "8")
	require.NoError(t, err)

	html, err := c.ReceiptHTML(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, html, "COMANDA 1")
	assert.Contains(t, html, "Pastel")

	_, err = c.ReceiptPDF(ctx, 1)
	assert.Error(t, err)
}

func TestController_EnergyReadings(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	reading, err := c.AddEnergyReading(ctx, EnergyInput{MinReading: "1000", MaxReading: "1250", Factor: "0,85"})
	require.NoError(t, err)
	assert.True(t, reading.Cost().Equal(dec("212.5")))

	_, err = c.AddEnergyReading(ctx, EnergyInput{
		MinReading: "1", MaxReading: "2", Factor: "1",
		StartDate: "2024-03-10", EndDate: "2024-03-01",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	readings, err := c.EnergyReadings(ctx)
	require.NoError(t, err)
	assert.Len(t, readings, 1)

	require.NoError(t, c.DeleteEnergyReading(ctx, reading.ID))
	assert.ErrorIs(t, c.DeleteEnergyReading(ctx, reading.ID), shared.ErrNotFound)
}

func TestController_WriterLock(t *testing.T) {
	lock := &fakeLock{}
	c, gw := newTestController(t, WithWriterLock(lock))
	ctx := context.Background()

	// another process writes behind our back
	require.NoError(t, gw.SaveBills(ctx, []finance.Bill{{ID: "ext", Description: "x", DueDate: valueobject.MustParseDay("2024-01-01")}}))

	bills, err := c.Bills(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 1)

	_, err = c.AddBill(ctx, "Internet", "99", "2024-04-01")
	require.NoError(t, err)
	assert.Equal(t, 1, lock.acquired)
	assert.Equal(t, 1, lock.released)

	snap, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Bills, 2)
}

func TestController_WriterLockRefused(t *testing.T) {
	lock := &fakeLock{err: shared.ErrConcurrencyConflict}
	c, _ := newTestController(t, WithWriterLock(lock))

	_, err := c.AddValue(context.Background(), "cash", "1")
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestController_ConcurrentMutations(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.AddValue(ctx, "cash", "1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := c.Today(ctx)
	require.NoError(t, err)
	assert.True(t, view.Entry.CashIn.Equal(dec("20")))
}
