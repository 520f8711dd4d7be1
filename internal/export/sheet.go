package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"
	"github.com/theirongolddev/atlas/internal/pipeline"

	"github.com/xuri/excelize/v2"
)

// Columns is the header row shared by the CSV and XLSX exports.
var Columns = []string{"Date", "Type", "Category", "Account", "Amount", "Note"}

func row(tx model.Transaction) []string {
	return []string{
		tx.Date,
		string(tx.Type),
		cli.CategoryLabel(tx),
		cli.AccountCell(tx),
		tx.Amount.StringFixed(2),
		tx.Note,
	}
}

// WriteCSV writes the transactions newest first.
func WriteCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, tx := range pipeline.SortRecent(txs) {
		if err := cw.Write(row(tx)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const (
	txSheet      = "Transactions"
	summarySheet = "Monthly"
)

// WriteXLSX writes a workbook with the transactions, newest first, and a
// per-month income/expense/net sheet.
func WriteXLSX(w io.Writer, txs []model.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", txSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := setRow(f, txSheet, 1, toCells(Columns)); err != nil {
		return err
	}
	for i, tx := range pipeline.SortRecent(txs) {
		cells := toCells(row(tx))
		cells[4] = money.Float(tx.Amount)
		if err := setRow(f, txSheet, i+2, cells); err != nil {
			return err
		}
	}
	for col, width := range map[string]float64{"A": 12, "B": 10, "C": 16, "D": 22, "E": 12, "F": 32} {
		if err := f.SetColWidth(txSheet, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := setRow(f, summarySheet, 1, []any{"Month", "Income", "Expense", "Net"}); err != nil {
		return err
	}
	for i, ym := range pipeline.MonthsWithActivity(txs) {
		s := pipeline.MonthlySummary(txs, ym)
		cells := []any{ym, money.Float(s.Income), money.Float(s.Expense), money.Float(s.Net)}
		if err := setRow(f, summarySheet, i+2, cells); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	for col, v := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return fmt.Errorf("setting %s!%s: %w", sheet, name, err)
		}
	}
	return nil
}
