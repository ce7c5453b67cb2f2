package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/reimburse-desk/backend/internal/application/adapter"
)

func TestExcelExporter_ExportReimbursements(t *testing.T) {
	exporter := NewExcelExporter(nil)
	rows := []*adapter.ReimbursementRow{
		{
			Label:              "Rep#001",
			Title:              "Client visit",
			OwnerName:          "Ana",
			OwnerEmail:         "ana@example.com",
			ExpenseCount:       2,
			TotalAmount:        decimal.RequireFromString("210.00"),
			DeductionAmount:    decimal.RequireFromString("10.00"),
			ReimbursedAt:       time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
			FinanceDescription: "wire 8812",
		},
		{
			Label:        "Rep#004",
			Title:        "Conference",
			OwnerName:    "Bo",
			OwnerEmail:   "bo@example.com",
			ExpenseCount: 1,
			TotalAmount:  decimal.RequireFromString("99.50"),
			ReimbursedAt: time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC),
		},
	}

	content, err := exporter.ExportReimbursements(context.Background(), "2026-03", rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"2026-03"}, f.GetSheetList())

	header, _ := f.GetCellValue("2026-03", "A1")
	assert.Equal(t, "Report", header)

	label, _ := f.GetCellValue("2026-03", "A2")
	assert.Equal(t, "Rep#001", label)

	paid, _ := f.GetCellValue("2026-03", "H2")
	assert.Equal(t, "200", paid)

	reimbursedAt, _ := f.GetCellValue("2026-03", "I3")
	assert.Equal(t, "2026-03-20", reimbursedAt)

	totalLabel, _ := f.GetCellValue("2026-03", "A4")
	assert.Equal(t, "Total", totalLabel)

	total, _ := f.GetCellValue("2026-03", "F4")
	assert.Equal(t, "309.5", total)
}

func TestExcelExporter_EmptyMonth(t *testing.T) {
	content, err := NewExcelExporter(nil).ExportReimbursements(context.Background(), "2026-02", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	totalLabel, _ := f.GetCellValue("2026-02", "A2")
	assert.Equal(t, "Total", totalLabel)
}
