package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fintrak/backend/internal/application/backup"
	importapp "github.com/fintrak/backend/internal/application/import"
	"github.com/fintrak/backend/internal/application/insight"
	"github.com/fintrak/backend/internal/application/state"
	"github.com/fintrak/backend/internal/infrastructure/export"
	"github.com/fintrak/backend/internal/infrastructure/persistence"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/fintrak/backend/internal/interfaces/http/middleware"
	"github.com/fintrak/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context) (*insight.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*insight.Result), args.Error(1)
}

type MockSnapshotter struct {
	mock.Mock
}

func (m *MockSnapshotter) Snapshot(ctx context.Context) (*backup.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backup.Result), args.Error(1)
}

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

type testAPI struct {
	engine     *gin.Engine
	insights   *MockSummarizer
	snapshots  *MockSnapshotter
	controller *state.Controller
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	middleware.SetupValidator()

	gw := persistence.NewDocumentGateway(persistence.NewMemoryDocumentStore())
	ctrl, err := state.NewController(context.Background(), gw,
		state.WithClock(func() time.Time { return testNow }),
		state.WithLocation(time.UTC),
	)
	require.NoError(t, err)

	api := &testAPI{
		engine:     gin.New(),
		insights:   new(MockSummarizer),
		snapshots:  new(MockSnapshotter),
		controller: ctrl,
	}
	metering := NewMeteringHandler(ctrl)
	router.NewRouter(api.engine).Register(
		LedgerRoutes(NewLedgerHandler(ctrl)),
		BillRoutes(NewBillHandler(ctrl)),
		DebtRoutes(NewDebtHandler(ctrl)),
		CatalogRoutes(NewCatalogHandler(ctrl, importapp.NewBudgetImportService(ctrl, nil))),
		ComandaRoutes(NewComandaHandler(ctrl)),
		EnergyRoutes(metering),
		ScaleRoutes(metering),
		InsightRoutes(NewInsightHandler(api.insights)),
		BackupRoutes(NewBackupHandler(api.snapshots)),
	).Setup()
	return api
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (a *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	if body == "" {
		a.engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	} else {
		a.engine.ServeHTTP(w, jsonRequest(method, target, body))
	}
	return w
}

// data decodes the data field of a success envelope into out
func data(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var envelope struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.Response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}

func TestLedgerHandler_Today(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/ledger/today", "")

	require.Equal(t, http.StatusOK, w.Code)
	var today TodayResponse
	data(t, w, &today)
	assert.True(t, today.Unsaved)
	assert.Equal(t, "2024-03-15", today.Entry.Date)
	assert.Equal(t, "15/03/2024", today.Entry.DisplayDate)
	assert.Equal(t, 0.4, today.Entry.Percentage)
}

func TestLedgerHandler_AddValue(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/ledger/today/values", `{"channel":"cash","amount":"100,00"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodPost, "/api/v1/ledger/today/values", `{"channel":"exit","amount":20}`)
	require.Equal(t, http.StatusOK, w.Code)

	var today TodayResponse
	data(t, w, &today)
	assert.False(t, today.Unsaved)
	assert.Equal(t, 100.0, today.Entry.CashIn)
	assert.Equal(t, 20.0, today.Entry.Exit)
	assert.Equal(t, 80.0, today.Figures.LiquidValue)
	assert.Equal(t, 32.0, today.Figures.MarkupValue)
	assert.Equal(t, 48.0, today.Figures.RealBalance)
}

func TestLedgerHandler_AddValue_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"unknown channel", `{"channel":"boleto","amount":"10"}`, dto.ErrCodeValidation},
		{"missing amount", `{"channel":"cash"}`, dto.ErrCodeValidation},
		{"malformed json", `{"channel":`, dto.ErrCodeValidation},
		{"unparseable amount", `{"channel":"cash","amount":"abc"}`, dto.ErrCodeInvalidInput},
		{"exponent number", `{"channel":"cash","amount":1e400}`, dto.ErrCodeInvalidInput},
		{"exponent string", `{"channel":"cash","amount":"1e20000000"}`, dto.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			w := api.do(http.MethodPost, "/api/v1/ledger/today/values", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))

			history, err := api.controller.History(context.Background())
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestLedgerHandler_UpdateMarkup(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPut, "/api/v1/ledger/today/markup", `{"percent":"30"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var today TodayResponse
	data(t, w, &today)
	assert.Equal(t, 0.3, today.Entry.Percentage)
}

func TestLedgerHandler_HistoryAndDelete(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/ledger/today/values", `{"channel":"pix","amount":50}`).Code)

	w := api.do(http.MethodGet, "/api/v1/ledger/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []EntryResponse
	resp := data(t, w, &entries)
	require.Len(t, entries, 1)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 50.0, entries[0].TotalEntry)

	w = api.do(http.MethodDelete, "/api/v1/ledger/entries/"+entries[0].ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodDelete, "/api/v1/ledger/entries/"+entries[0].ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, errorCode(t, w))
}

func TestLedgerHandler_Export(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/ledger/today/values", `{"channel":"card","amount":10}`).Code)

	w := api.do(http.MethodGet, "/api/v1/ledger/entries/export", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), export.HistoryFilename)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.HistorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLedgerHandler_Vault(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/ledger/today/values", `{"channel":"cash","amount":100}`).Code)

	t.Run("range containing today", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/v1/ledger/vault?start=2024-03-01&end=2024-03-31", "")
		require.Equal(t, http.StatusOK, w.Code)
		var vault VaultResponse
		data(t, w, &vault)
		assert.Equal(t, 1, vault.Count)
		assert.Equal(t, 100.0, vault.Balance)
	})

	t.Run("range before today", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/v1/ledger/vault?start=2024-01-01&end=2024-01-31", "")
		require.Equal(t, http.StatusOK, w.Code)
		var vault VaultResponse
		data(t, w, &vault)
		assert.Zero(t, vault.Count)
	})

	t.Run("malformed date", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/v1/ledger/vault?start=15/03/2024", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
	})
}

func TestLedgerHandler_Dashboard(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/v1/ledger/today/values", `{"channel":"cash","amount":200}`).Code)

	w := api.do(http.MethodGet, "/api/v1/ledger/dashboard", "")

	require.Equal(t, http.StatusOK, w.Code)
	var dash DashboardResponse
	data(t, w, &dash)
	assert.Equal(t, 200.0, dash.Summary.TotalEntry)
	assert.Equal(t, 80.0, dash.Summary.TotalMarkup)
	assert.Equal(t, 40.0, dash.Summary.AverageMarkupPercent)
	assert.Equal(t, 1, dash.Summary.Days)
	require.Len(t, dash.Series, 1)
	assert.Equal(t, "15/03/2024", dash.Series[0].DisplayDate)
}

func TestBillHandler(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/bills", `{"description":"Rent","value":"1.500,00","dueDate":"2024-04-05"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var bill BillResponse
	data(t, w, &bill)
	assert.Equal(t, 1500.0, bill.Value)
	assert.False(t, bill.Paid)

	w = api.do(http.MethodPost, "/api/v1/bills/"+bill.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	data(t, w, &bill)
	assert.True(t, bill.Paid)

	w = api.do(http.MethodGet, "/api/v1/bills", "")
	var bills []BillResponse
	data(t, w, &bills)
	require.Len(t, bills, 1)
	assert.True(t, bills[0].Paid)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/bills/"+bill.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/api/v1/bills/"+bill.ID+"/toggle", "").Code)
}

func TestBillHandler_Validation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/bills", `{"description":"Rent","value":100,"dueDate":"05/04/2024"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
}

func TestDebtHandler(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/debts", `{"clientName":"Maria","value":35.5,"description":"2 lunches"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var debt DebtResponse
	data(t, w, &debt)
	assert.Equal(t, "2024-03-15", debt.Date)
	assert.Equal(t, 35.5, debt.Value)

	w = api.do(http.MethodPost, "/api/v1/debts", `{"clientName":"Maria","value":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/debts/"+debt.ID, "").Code)

	w = api.do(http.MethodGet, "/api/v1/debts", "")
	var debts []DebtResponse
	data(t, w, &debts)
	assert.Empty(t, debts)
}

func TestCatalogHandler(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/catalog/products", `{"name":"Coxinha","cost":"2,00","price":"5,00"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var product BudgetResponse
	data(t, w, &product)
	assert.Equal(t, 3.0, product.Profit)
	assert.Equal(t, 60.0, product.MarginPercent)
	assert.Equal(t, "excellent", product.Band)

	w = api.do(http.MethodGet, "/api/v1/catalog/products/search?q=cox", "")
	require.Equal(t, http.StatusOK, w.Code)
	var found []BudgetResponse
	data(t, w, &found)
	require.Len(t, found, 1)

	w = api.do(http.MethodGet, "/api/v1/catalog/products/search?q=", "")
	data(t, w, &found)
	assert.Empty(t, found)

	w = api.do(http.MethodPost, "/api/v1/catalog/products", `{"name":"Free","cost":1,"price":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/catalog/products/"+product.ID, "").Code)
}

func TestCatalogHandler_ImportCSV(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.controller.AddBudget(context.Background(), "Coxinha", "2", "5")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products/import?mode=update",
		strings.NewReader("nome;custo;preço\nPastel;4;8\nCoxinha;2;6\nBolo;x;9\n"))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result importapp.BudgetImportResult
	data(t, w, &result)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.ImportedRows)
	assert.Equal(t, 1, result.UpdatedRows)
	assert.Equal(t, 1, result.ErrorRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].Row)

	var products []BudgetResponse
	data(t, api.do(http.MethodGet, "/api/v1/catalog/products", ""), &products)
	require.Len(t, products, 2)
	assert.Equal(t, "Pastel", products[0].Name)
	assert.Equal(t, 6.0, products[1].Price)
}

func TestCatalogHandler_ImportMultipart(t *testing.T) {
	api := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "produtos.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,cost,price\nSuco,2,6\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/products/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result importapp.BudgetImportResult
	data(t, w, &result)
	assert.Equal(t, 1, result.ImportedRows)
}

func TestCatalogHandler_ImportRejectsFile(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"missing column", "/api/v1/catalog/products/import", "name,price\nSuco,6"},
		{"unknown mode", "/api/v1/catalog/products/import?mode=merge", "name,cost,price\nSuco,2,6"},
		{"empty body", "/api/v1/catalog/products/import", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "text/csv")
			w := httptest.NewRecorder()
			api.engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, dto.ErrCodeInvalidInput, errorCode(t, w))
		})
	}

	var products []BudgetResponse
	data(t, api.do(http.MethodGet, "/api/v1/catalog/products", ""), &products)
	assert.Empty(t, products)
}

func TestComandaHandler(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/comandas", "")
	require.Equal(t, http.StatusOK, w.Code)
	var pool []ComandaResponse
	data(t, w, &pool)
	assert.Len(t, pool, 10)

	w = api.do(http.MethodPut, "/api/v1/comandas/3/client", `{"clientName":"João"}`)
	require.Equal(t, http.StatusOK, w.Code)

	api.do(http.MethodPost, "/api/v1/comandas/3/items", `{"name":"Suco","price":"6,50"}`)
	w = api.do(http.MethodPost, "/api/v1/comandas/3/items", `{"name":"suco","price":"6,50"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var cm ComandaResponse
	data(t, w, &cm)
	require.Len(t, cm.Items, 1)
	assert.Equal(t, 2, cm.Items[0].Quantity)
	assert.Equal(t, 13.0, cm.Total)
	assert.True(t, cm.Open)

	w = api.do(http.MethodPatch, "/api/v1/comandas/3/items/"+cm.Items[0].ID, `{"delta":-2}`)
	require.Equal(t, http.StatusOK, w.Code)
	data(t, w, &cm)
	assert.Empty(t, cm.Items)

	w = api.do(http.MethodPost, "/api/v1/comandas/3/clear", `{"confirm":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPost, "/api/v1/comandas/3/clear", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	data(t, w, &cm)
	assert.Empty(t, cm.ClientName)
	assert.False(t, cm.Open)
}

func TestComandaHandler_UnknownTicket(t *testing.T) {
	api := newTestAPI(t)

	for _, target := range []string{"/api/v1/comandas/99", "/api/v1/comandas/abc"} {
		w := api.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestComandaHandler_Receipt(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodPost, "/api/v1/comandas/1/items", `{"name":"Pastel","price":8}`)

	w := api.do(http.MethodGet, "/api/v1/comandas/1/receipt?format=html", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Pastel")

	w = api.do(http.MethodGet, "/api/v1/comandas/1/receipt", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, dto.ErrCodePrintingDisabled, errorCode(t, w))
}

func TestMeteringHandler_Calculators(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/energy/consumption", `{"previous":"1200","current":1350}`)
	require.Equal(t, http.StatusOK, w.Code)
	var consumption ConsumptionResponse
	data(t, w, &consumption)
	assert.Equal(t, 150.0, consumption.Consumption)

	w = api.do(http.MethodPost, "/api/v1/energy/consumption", `{"previous":"x","current":"10"}`)
	data(t, w, &consumption)
	assert.Equal(t, 10.0, consumption.Consumption)

	w = api.do(http.MethodPost, "/api/v1/scale/quotes", `{"stations":[{"kgPrice":"49,90","weight":"0,5"},{"kgPrice":"","weight":"1"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var quotes []StationQuoteResponse
	data(t, w, &quotes)
	require.Len(t, quotes, 2)
	assert.Equal(t, 1, quotes[0].Station)
	assert.Equal(t, 24.95, quotes[0].Total)
	assert.Zero(t, quotes[1].Total)

	w = api.do(http.MethodPost, "/api/v1/scale/quotes", `{"stations":[{},{},{},{},{}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeteringHandler_Readings(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/energy/readings",
		`{"minReading":"1000","maxReading":"1250","factor":"0,85","startDate":"2024-02-01","endDate":"2024-03-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var reading EnergyReadingResponse
	data(t, w, &reading)
	assert.Equal(t, 250.0, reading.Consumption)
	assert.Equal(t, 212.5, reading.Cost)

	w = api.do(http.MethodPost, "/api/v1/energy/readings",
		`{"minReading":"1","maxReading":"2","factor":"1","startDate":"2024-03-01","endDate":"2024-02-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/api/v1/energy/readings", "")
	var readings []EnergyReadingResponse
	data(t, w, &readings)
	assert.Len(t, readings, 1)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/v1/energy/readings/"+reading.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/api/v1/energy/readings/"+reading.ID, "").Code)
}

func TestInsightHandler(t *testing.T) {
	t.Run("returns generated text", func(t *testing.T) {
		api := newTestAPI(t)
		api.insights.On("Summarize", mock.Anything).Return(&insight.Result{Text: "Raise the coffee price", Generated: true}, nil)

		w := api.do(http.MethodPost, "/api/v1/insights", "")

		require.Equal(t, http.StatusOK, w.Code)
		var result insight.Result
		data(t, w, &result)
		assert.True(t, result.Generated)
		api.insights.AssertExpectations(t)
	})

	t.Run("empty ledger", func(t *testing.T) {
		api := newTestAPI(t)
		api.insights.On("Summarize", mock.Anything).Return(nil, insight.ErrNoEntries)

		w := api.do(http.MethodPost, "/api/v1/insights", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, errorCode(t, w))
	})
}

func TestBackupHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshots.On("Snapshot", mock.Anything).Return(&backup.Result{
			Key:         "fintrak/state/20240315T103000Z.json",
			Size:        512,
			DownloadURL: "https://example.test/backup",
		}, nil)

		w := api.do(http.MethodPost, "/api/v1/backups", "")

		require.Equal(t, http.StatusCreated, w.Code)
		var result backup.Result
		data(t, w, &result)
		assert.Equal(t, "fintrak/state/20240315T103000Z.json", result.Key)
	})

	t.Run("upload fails", func(t *testing.T) {
		api := newTestAPI(t)
		api.snapshots.On("Snapshot", mock.Anything).Return(nil, errors.New("bucket missing"))

		w := api.do(http.MethodPost, "/api/v1/backups", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, errorCode(t, w))
	})
}
