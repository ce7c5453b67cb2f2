// Package export renders finance exports as Excel workbooks.
package export

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
)

const dateLayout = "2006-01-02"

var reimbursementHeader = []interface{}{
	"Report",
	"Title",
	"Owner",
	"Email",
	"Expenses",
	"Total",
	"Deduction",
	"Paid",
	"Reimbursed At",
	"Finance Note",
}

// ExcelExporter implements adapter.ReportExporter with excelize.
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates a new Excel exporter.
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExcelExporter{logger: logger}
}

var _ adapter.ReportExporter = (*ExcelExporter)(nil)

// ExportReimbursements writes one row per report plus a totals row into a sheet named after the month.
func (e *ExcelExporter) ExportReimbursements(ctx context.Context, month string, rows []*adapter.ReimbursementRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &reimbursementHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	total, deducted := decimal.Zero, decimal.Zero
	for i, row := range rows {
		paid := row.TotalAmount.Sub(row.DeductionAmount)
		values := []interface{}{
			row.Label,
			row.Title,
			row.OwnerName,
			row.OwnerEmail,
			row.ExpenseCount,
			money(row.TotalAmount),
			money(row.DeductionAmount),
			money(paid),
			row.ReimbursedAt.UTC().Format(dateLayout),
			row.FinanceDescription,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}

		total = total.Add(row.TotalAmount)
		deducted = deducted.Add(row.DeductionAmount)
	}

	totalsCell, err := excelize.CoordinatesToCellName(1, len(rows)+2)
	if err != nil {
		return nil, err
	}
	totals := []interface{}{"Total", "", "", "", len(rows), money(total), money(deducted), money(total.Sub(deducted))}
	if err := f.SetSheetRow(sheet, totalsCell, &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "J", 16); err != nil {
		e.logger.Warn("failed to set column width", zap.Error(err))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("reimbursement export rendered", zap.String("month", month), zap.Int("rows", len(rows)))
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}
