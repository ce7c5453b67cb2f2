// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// TierRepository defines the interface for tier persistence operations.
type TierRepository interface {
	// FindByID retrieves a tier with its categories.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error)

	// Upsert creates the tier or replaces its title, categories and total.
	Upsert(ctx context.Context, tier *entity.Tier) error
}
