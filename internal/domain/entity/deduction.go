// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeductionMode tells where a deduction is taken from.
type DeductionMode string

const (
	DeductionModeBank   DeductionMode = "bank"
	DeductionModeWallet DeductionMode = "wallet"
)

// Deduction is a debit against a user, either withheld from a bank
// reimbursement or drawn from the monthly wallet.
type Deduction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	DeductedBy  Principal
	ReportID    *uuid.UUID
	Mode        DeductionMode
	Active      bool
	Description string
	CreatedAt   time.Time
}

// NewDeduction creates a new active Deduction entity.
func NewDeduction(userID uuid.UUID, amount decimal.Decimal, deductedBy Principal, reportID *uuid.UUID, mode DeductionMode, description string, at time.Time) *Deduction {
	return &Deduction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		DeductedBy:  deductedBy,
		ReportID:    reportID,
		Mode:        mode,
		Active:      true,
		Description: description,
		CreatedAt:   at.UTC(),
	}
}
