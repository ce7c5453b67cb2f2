// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// DeductionRepository defines the interface for deduction persistence operations.
type DeductionRepository interface {
	// Create creates a new deduction in the database.
	Create(ctx context.Context, deduction *entity.Deduction) error

	// FindActiveWalletInWindow retrieves a user's active wallet-mode deductions created inside the window.
	FindActiveWalletInWindow(ctx context.Context, userID uuid.UUID, window valueobject.MonthWindow) ([]*entity.Deduction, error)

	// FindByReports retrieves deductions linked to any of the reports.
	FindByReports(ctx context.Context, reportIDs []uuid.UUID) ([]*entity.Deduction, error)
}
