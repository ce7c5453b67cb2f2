// Package tier contains tier administration use cases.
package tier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// GetTierInput represents the input for fetching a tier.
type GetTierInput struct {
	ID uuid.UUID
}

// GetTierOutput represents the output of fetching a tier.
type GetTierOutput struct {
	Tier *entity.Tier
}

// GetTierUseCase handles tier lookup logic.
type GetTierUseCase struct {
	tierRepo adapter.TierRepository
}

// NewGetTierUseCase creates a new GetTierUseCase instance.
func NewGetTierUseCase(tierRepo adapter.TierRepository) *GetTierUseCase {
	return &GetTierUseCase{
		tierRepo: tierRepo,
	}
}

// Execute performs the tier lookup.
func (uc *GetTierUseCase) Execute(ctx context.Context, input GetTierInput) (*GetTierOutput, error) {
	tier, err := uc.tierRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTierNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeTierNotFound, "tier not found", domainerror.ErrTierNotFound)
		}
		return nil, fmt.Errorf("failed to find tier: %w", err)
	}
	return &GetTierOutput{Tier: tier}, nil
}
