// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// UserRepository defines the interface for staff account lookups.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIDs retrieves the users with the given IDs. Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)

	// FindIDsByTier returns the IDs of every user assigned to the tier.
	FindIDsByTier(ctx context.Context, tierID uuid.UUID) ([]uuid.UUID, error)

	// FindIDsByApprover returns the IDs of every user whose approver is the given principal.
	FindIDsByApprover(ctx context.Context, approver entity.Principal) ([]uuid.UUID, error)
}

// AdminRepository defines the interface for administrator account lookups.
type AdminRepository interface {
	// Create creates a new administrator in the database.
	Create(ctx context.Context, admin *entity.Admin) error

	// FindByID retrieves an administrator by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
}
