// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// ExpenseFilterType selects which expenses a listing returns.
type ExpenseFilterType string

const (
	ExpenseFilterAll        ExpenseFilterType = "all"
	ExpenseFilterUnreported ExpenseFilterType = "unreported" // Still drafted
	ExpenseFilterReported   ExpenseFilterType = "reported"   // Mapped or later
)

// IsValid reports whether the filter type is known.
func (f ExpenseFilterType) IsValid() bool {
	return f == ExpenseFilterAll || f == ExpenseFilterUnreported || f == ExpenseFilterReported
}

// ExpenseFilter defines filter options for listing expenses.
type ExpenseFilter struct {
	UserID uuid.UUID
	Type   ExpenseFilterType
	Status *entity.ExpenseStatus
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByIDs retrieves the expenses with the given IDs. Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Expense, error)

	// UpdateAIScores stores the receipt analysis result of an expense.
	UpdateAIScores(ctx context.Context, id uuid.UUID, scores *entity.ReceiptScores) error

	// FindByFilter retrieves expenses newest first with pagination.
	FindByFilter(ctx context.Context, filter ExpenseFilter, pagination Pagination) (*entity.ExpenseListResult, error)
}
