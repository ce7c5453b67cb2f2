// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// TransactionRepository defines the interface for advance payment persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// UpdateStatus saves a status change, only if the stored status still equals from.
	// Returns ErrInvalidSettlement when it does not.
	UpdateStatus(ctx context.Context, transaction *entity.Transaction, from entity.TransactionStatus) error

	// FindCompletedForReceiverInWindow retrieves completed advances to a user paid inside the window.
	FindCompletedForReceiverInWindow(ctx context.Context, receiverID uuid.UUID, window valueobject.MonthWindow) ([]*entity.Transaction, error)
}
