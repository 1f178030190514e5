// Package importapp loads catalogue products from spreadsheet exports.
package importapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fintrak/backend/internal/domain/catalog"
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
	csvimport "github.com/fintrak/backend/internal/infrastructure/import"
	"go.uber.org/zap"
)

// Required columns of a product file
var budgetColumns = []string{"name", "cost", "price"}

// budgetHeaderAliases accepts the Portuguese headers the dashboard exports
var budgetHeaderAliases = map[string]string{
	"nome":    "name",
	"produto": "name",
	"custo":   "cost",
	"preço":   "price",
	"preco":   "price",
	"venda":   "price",
}

// Catalogue is the part of the state controller the import writes to
type Catalogue interface {
	ImportBudgets(ctx context.Context, incoming []catalog.ProductBudget, policy catalog.ConflictPolicy) (catalog.MergeResult, error)
}

// BudgetImportResult reports what an import did
type BudgetImportResult struct {
	TotalRows    int                  `json:"totalRows"`
	ImportedRows int                  `json:"importedRows"`
	UpdatedRows  int                  `json:"updatedRows"`
	SkippedRows  int                  `json:"skippedRows"`
	ErrorRows    int                  `json:"errorRows"`
	Errors       []csvimport.RowError `json:"errors"`
	IsTruncated  bool                 `json:"isTruncated,omitempty"`
	TotalErrors  int                  `json:"totalErrors,omitempty"`
}

// BudgetImportService handles catalogue bulk imports
type BudgetImportService struct {
	catalogue Catalogue
	maxRows   int
	logger    *zap.Logger
}

// NewBudgetImportService creates a new BudgetImportService
func NewBudgetImportService(catalogue Catalogue, logger *zap.Logger) *BudgetImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BudgetImportService{
		catalogue: catalogue,
		maxRows:   csvimport.DefaultMaxRows,
		logger:    logger,
	}
}

// Import reads products from a CSV file. Invalid rows are reported and
// left out; the valid rows are written in one change. Under
// catalog.ConflictFail a name already in the catalogue rejects the whole file.
func (s *BudgetImportService) Import(ctx context.Context, r io.Reader, policy catalog.ConflictPolicy) (*BudgetImportResult, error) {
	if policy == "" {
		policy = catalog.ConflictSkip
	}
	if !policy.IsValid() {
		return nil, shared.InvalidInput("mode must be one of skip, update, fail")
	}

	rows, err := s.readRows(r)
	if err != nil {
		return nil, err
	}

	result := &BudgetImportResult{TotalRows: len(rows)}
	errs := csvimport.NewErrorCollection(100)

	incoming := make([]catalog.ProductBudget, 0, len(rows))
	lines := make([]int, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for _, row := range rows {
		budget, ok := parseBudgetRow(row, errs)
		if !ok {
			result.ErrorRows++
			continue
		}
		key := strings.ToLower(budget.Name)
		if first, dup := seen[key]; dup {
			errs.Add(csvimport.NewRowErrorWithValue(row.LineNumber, "name", csvimport.ErrCodeImportDuplicate,
				fmt.Sprintf("product already listed on row %d", first), budget.Name))
			result.ErrorRows++
			continue
		}
		seen[key] = row.LineNumber
		incoming = append(incoming, budget)
		lines = append(lines, row.LineNumber)
	}

	if len(incoming) > 0 {
		merged, err := s.catalogue.ImportBudgets(ctx, incoming, policy)
		if err != nil {
			return nil, err
		}
		result.ImportedRows = merged.Added
		result.UpdatedRows = merged.Updated
		result.SkippedRows = merged.Skipped
		if policy == catalog.ConflictFail {
			for _, i := range merged.Conflicts {
				errs.Add(csvimport.NewRowErrorWithValue(lines[i], "name", csvimport.ErrCodeImportConflict,
					"product already in the catalogue", incoming[i].Name))
				result.ErrorRows++
			}
		}
	}

	result.Errors = errs.Errors()
	result.IsTruncated = errs.IsTruncated()
	result.TotalErrors = errs.TotalCount()

	s.logger.Info("catalogue import finished",
		zap.String("mode", string(policy)),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported_rows", result.ImportedRows),
		zap.Int("updated_rows", result.UpdatedRows),
		zap.Int("skipped_rows", result.SkippedRows),
		zap.Int("error_rows", result.ErrorRows),
	)
	return result, nil
}

// readRows parses the file. Problems with the file as a whole are input errors.
func (s *BudgetImportService) readRows(r io.Reader) ([]*csvimport.Row, error) {
	parser, err := csvimport.NewCSVParser(r,
		csvimport.WithHeaderAliases(budgetHeaderAliases),
		csvimport.WithMaxRows(s.maxRows),
	)
	if err != nil {
		return nil, fileError(err)
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, fileError(err)
	}
	if missing := parser.ValidateHeaders(budgetColumns); len(missing) > 0 {
		return nil, shared.InvalidInput("missing columns: " + strings.Join(missing, ", "))
	}
	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, fileError(err)
	}
	return rows, nil
}

func fileError(err error) error {
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrInvalidEncoding),
		errors.Is(err, csvimport.ErrMissingHeader),
		errors.Is(err, csvimport.ErrNoDataRows),
		errors.Is(err, csvimport.ErrTooManyRows):
		return shared.InvalidInput(err.Error())
	}
	return shared.InvalidInput("malformed CSV: " + err.Error())
}

func parseBudgetRow(row *csvimport.Row, errs *csvimport.ErrorCollection) (catalog.ProductBudget, bool) {
	name := row.Get("name")
	if name == "" {
		errs.AddRequiredError(row.LineNumber, "name")
		return catalog.ProductBudget{}, false
	}

	cost, err := valueobject.ParseAmount(row.Get("cost"))
	if err != nil {
		errs.AddTypeError(row.LineNumber, "cost", "number", row.Get("cost"))
		return catalog.ProductBudget{}, false
	}
	price, err := valueobject.ParseAmount(row.Get("price"))
	if err != nil {
		errs.AddTypeError(row.LineNumber, "price", "number", row.Get("price"))
		return catalog.ProductBudget{}, false
	}

	budget, err := catalog.NewProductBudget(name, cost, price)
	if err != nil {
		errs.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, err.Error()))
		return catalog.ProductBudget{}, false
	}
	return budget, true
}
