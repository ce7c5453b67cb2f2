// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReimbursementRow is one reimbursed report in a finance export.
type ReimbursementRow struct {
	Label              string
	Title              string
	OwnerName          string
	OwnerEmail         string
	ExpenseCount       int
	TotalAmount        decimal.Decimal
	DeductionAmount    decimal.Decimal
	ReimbursedAt       time.Time
	FinanceDescription string
}

// ReportExporter renders finance exports.
type ReportExporter interface {
	// ExportReimbursements renders the rows of a month as a spreadsheet.
	ExportReimbursements(ctx context.Context, month string, rows []*ReimbursementRow) ([]byte, error)
}
