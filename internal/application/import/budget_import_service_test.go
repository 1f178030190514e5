package importapp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/shared"
	csvimport "github.com/fintrak/backend/internal/infrastructure/import"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogue is a mock implementation of Catalogue
type MockCatalogue struct {
	mock.Mock
}

func (m *MockCatalogue) ImportBudgets(ctx context.Context, incoming []catalog.ProductBudget, policy catalog.ConflictPolicy) (catalog.MergeResult, error) {
	args := m.Called(ctx, incoming, policy)
	return args.Get(0).(catalog.MergeResult), args.Error(1)
}

func TestBudgetImportService_Import(t *testing.T) {
	cat := new(MockCatalogue)
	cat.On("ImportBudgets", mock.Anything, mock.MatchedBy(func(in []catalog.ProductBudget) bool {
		return len(in) == 2 &&
			in[0].Name == "Café 500g" && in[0].Cost.Equal(decimal.RequireFromString("12.5")) &&
			in[1].Name == "Pão de queijo" && in[1].Price.Equal(decimal.RequireFromString("1234.56"))
	}), catalog.ConflictSkip).Return(catalog.MergeResult{Added: 2}, nil)

	svc := NewBudgetImportService(cat, nil)
	file := "Produto;Custo;Preço\nCafé 500g;12,50;20\nPão de queijo;2;1.234,56\n"

	result, err := svc.Import(context.Background(), strings.NewReader(file), "")

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.ImportedRows)
	assert.Equal(t, 0, result.ErrorRows)
	assert.Empty(t, result.Errors)
	cat.AssertExpectations(t)
}

func TestBudgetImportService_RowErrors(t *testing.T) {
	cat := new(MockCatalogue)
	cat.On("ImportBudgets", mock.Anything, mock.MatchedBy(func(in []catalog.ProductBudget) bool {
		return len(in) == 1 && in[0].Name == "Suco"
	}), catalog.ConflictUpdate).Return(catalog.MergeResult{Updated: 1, Conflicts: []int{0}}, nil)

	svc := NewBudgetImportService(cat, nil)
	file := strings.Join([]string{
		"name,cost,price",
		",1,2",       // row 2: no name
		"Bolo,abc,9", // row 3: bad cost
		"Torta,1,0",  // row 4: zero price
		"Suco,2,6",   // row 5
		"SUCO,2,7",   // row 6: repeated in file
	}, "\n")

	result, err := svc.Import(context.Background(), strings.NewReader(file), catalog.ConflictUpdate)

	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 1, result.UpdatedRows)
	assert.Equal(t, 4, result.ErrorRows)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, csvimport.ErrCodeImportRequiredField, result.Errors[0].Code)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, csvimport.ErrCodeImportInvalidType, result.Errors[1].Code)
	assert.Equal(t, "cost", result.Errors[1].Column)
	assert.Equal(t, csvimport.ErrCodeImportValidation, result.Errors[2].Code)
	assert.Equal(t, "price must be greater than zero", result.Errors[2].Message)
	assert.Equal(t, csvimport.ErrCodeImportDuplicate, result.Errors[3].Code)
	assert.Equal(t, 6, result.Errors[3].Row)
}

func TestBudgetImportService_FailModeReportsConflicts(t *testing.T) {
	cat := new(MockCatalogue)
	cat.On("ImportBudgets", mock.Anything, mock.Anything, catalog.ConflictFail).
		Return(catalog.MergeResult{Skipped: 2, Conflicts: []int{1}}, nil)

	svc := NewBudgetImportService(cat, nil)

	result, err := svc.Import(context.Background(),
		strings.NewReader("name,cost,price\nPastel,4,8\nCoxinha,3,5"), catalog.ConflictFail)

	require.NoError(t, err)
	assert.Equal(t, 0, result.ImportedRows)
	assert.Equal(t, 2, result.SkippedRows)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, csvimport.ErrCodeImportConflict, result.Errors[0].Code)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "Coxinha", result.Errors[0].Value)
}

func TestBudgetImportService_FileErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		mode catalog.ConflictPolicy
		want string
	}{
		{"empty file", "", catalog.ConflictSkip, "empty"},
		{"missing column", "name,price\nBolo,9", catalog.ConflictSkip, "missing columns: cost"},
		{"header only", "name,cost,price\n", catalog.ConflictSkip, "no data rows"},
		{"unknown mode", "name,cost,price\nBolo,1,9", catalog.ConflictPolicy("merge"), "mode must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := new(MockCatalogue)
			svc := NewBudgetImportService(cat, nil)

			_, err := svc.Import(context.Background(), strings.NewReader(tt.file), tt.mode)

			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.want)
			cat.AssertNotCalled(t, "ImportBudgets", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBudgetImportService_TooManyRows(t *testing.T) {
	svc := NewBudgetImportService(new(MockCatalogue), nil)
	svc.maxRows = 2

	_, err := svc.Import(context.Background(),
		strings.NewReader("name,cost,price\na,1,2\nb,1,2\nc,1,2"), catalog.ConflictSkip)

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.ErrorContains(t, err, "too many rows")
}

func TestBudgetImportService_WriteFailure(t *testing.T) {
	cat := new(MockCatalogue)
	cat.On("ImportBudgets", mock.Anything, mock.Anything, catalog.ConflictSkip).
		Return(catalog.MergeResult{}, errors.New("store down"))
	svc := NewBudgetImportService(cat, nil)

	_, err := svc.Import(context.Background(), strings.NewReader("name,cost,price\nBolo,1,9"), catalog.ConflictSkip)

	assert.ErrorContains(t, err, "store down")
}
