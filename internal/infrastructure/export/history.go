// Package export writes ledger data as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/fintrak/backend/internal/domain/finance"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of the generated workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HistorySheet is the name of the only worksheet
const HistorySheet = "Histórico"

// HistoryFilename is the suggested download name
const HistoryFilename = "historico-fintrak.xlsx"

// HistoryHeadings are the column titles, in order
var HistoryHeadings = []any{"Data", "Dinheiro", "PIX", "Cartão", "Total", "Saída", "Saldo", "Markup %", "Markup"}

const (
	currencyFormat = `"R$" #,##0.00;-"R$" #,##0.00`
	percentFormat  = "0.00%"
)

// WriteHistory writes calculated entries as an XLSX workbook, one row per day
// in the order given
func WriteHistory(w io.Writer, entries []finance.CalculatedEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(HistorySheet, "A1", &HistoryHeadings); err != nil {
		return err
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			e.Date.Display(),
			e.CashIn.InexactFloat64(),
			e.PixIn.InexactFloat64(),
			e.CardIn.InexactFloat64(),
			e.TotalEntry.InexactFloat64(),
			e.Exit.InexactFloat64(),
			e.Balance.InexactFloat64(),
			e.Percentage.InexactFloat64(),
			e.Markup.InexactFloat64(),
		}
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return err
		}
	}

	if err := applyStyles(f, len(entries)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func applyStyles(f *excelize.File, rows int) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(HistorySheet, "A1", "I1", header); err != nil {
		return err
	}
	if err := f.SetColWidth(HistorySheet, "A", "I", 14); err != nil {
		return err
	}
	if rows == 0 {
		return nil
	}

	currency := currencyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
	if err != nil {
		return err
	}
	percent := percentFormat
	pct, err := f.NewStyle(&excelize.Style{CustomNumFmt: &percent})
	if err != nil {
		return err
	}

	last := rows + 1
	if err := f.SetCellStyle(HistorySheet, "B2", fmt.Sprintf("G%d", last), money); err != nil {
		return err
	}
	if err := f.SetCellStyle(HistorySheet, "H2", fmt.Sprintf("H%d", last), pct); err != nil {
		return err
	}
	return f.SetCellStyle(HistorySheet, "I2", fmt.Sprintf("I%d", last), money)
}
