// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents where an expense is in the reimbursement lifecycle.
type ExpenseStatus string

const (
	ExpenseStatusDrafted    ExpenseStatus = "drafted"
	ExpenseStatusMapped     ExpenseStatus = "mapped"
	ExpenseStatusApproved   ExpenseStatus = "approved"
	ExpenseStatusRejected   ExpenseStatus = "rejected"
	ExpenseStatusReimbursed ExpenseStatus = "reimbursed"
)

// IsValid reports whether the status is known.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusDrafted, ExpenseStatusMapped, ExpenseStatusApproved,
		ExpenseStatusRejected, ExpenseStatusReimbursed:
		return true
	}
	return false
}

// IsMapped reports whether the expense already belongs to a report.
func (s ExpenseStatus) IsMapped() bool {
	return s != ExpenseStatusDrafted
}

// ReceiptScores is the outcome of analysing the receipt attached to an expense.
type ReceiptScores struct {
	AmountMatch   float64   `json:"amount_match"`
	CategoryMatch float64   `json:"category_match"`
	Authenticity  float64   `json:"authenticity"`
	Summary       string    `json:"summary"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}

// Expense is a single spend item submitted by a staff member.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Category    string
	Amount      decimal.Decimal
	Status      ExpenseStatus
	ExpenseDate time.Time
	Description string
	AIScores    *ReceiptScores
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new drafted Expense entity.
func NewExpense(userID uuid.UUID, title, category string, amount decimal.Decimal, expenseDate time.Time, description string) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Category:    category,
		Amount:      amount,
		Status:      ExpenseStatusDrafted,
		ExpenseDate: expenseDate,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExpenseListResult represents a page of expenses.
type ExpenseListResult struct {
	Expenses   []*Expense
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
