package tier

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// UpsertTierInput represents the input for creating or replacing a tier.
type UpsertTierInput struct {
	Actor       entity.Actor
	ID          uuid.UUID
	Title       string
	Categories  []entity.TierCategory
	TotalAmount decimal.Decimal
}

// UpsertTierOutput represents the stored tier.
type UpsertTierOutput struct {
	Tier *entity.Tier
}

// UpsertTierUseCase handles tier administration.
type UpsertTierUseCase struct {
	tierRepo adapter.TierRepository
	clock    adapter.Clock
}

// NewUpsertTierUseCase creates a new UpsertTierUseCase instance.
func NewUpsertTierUseCase(tierRepo adapter.TierRepository, clock adapter.Clock) *UpsertTierUseCase {
	return &UpsertTierUseCase{
		tierRepo: tierRepo,
		clock:    clock,
	}
}

// Execute validates and stores the tier.
func (uc *UpsertTierUseCase) Execute(ctx context.Context, input UpsertTierInput) (*UpsertTierOutput, error) {
	if !input.Actor.HasRole(entity.RoleAdmin) {
		return nil, domainerror.NewInsufficientRoleError("only administrators can change tiers")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidTier("tier title is required")
	}
	if input.TotalAmount.IsNegative() {
		return nil, invalidTier("tier total must not be negative")
	}

	seen := make(map[string]bool, len(input.Categories))
	categories := make([]entity.TierCategory, 0, len(input.Categories))
	for _, c := range input.Categories {
		name := strings.TrimSpace(c.Title)
		if name == "" {
			return nil, invalidTier("category title is required")
		}
		key := valueobject.CategoryKey(name)
		if seen[key] {
			return nil, invalidTier(fmt.Sprintf("category %q is listed twice", name))
		}
		seen[key] = true
		if c.MaxAmount.IsNegative() {
			return nil, invalidTier(fmt.Sprintf("category %q limit must not be negative", name))
		}
		categories = append(categories, entity.TierCategory{Title: name, MaxAmount: c.MaxAmount, Enabled: c.Enabled})
	}

	now := uc.clock.Now().UTC()
	tier := &entity.Tier{
		ID:          input.ID,
		Title:       title,
		Categories:  categories,
		TotalAmount: input.TotalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tier.ID == uuid.Nil {
		tier.ID = uuid.New()
	}

	if err := uc.tierRepo.Upsert(ctx, tier); err != nil {
		return nil, domainerror.New(domainerror.ErrCodeTierStorage, "failed to save tier", err)
	}

	return &UpsertTierOutput{Tier: tier}, nil
}

func invalidTier(message string) error {
	return domainerror.New(domainerror.ErrCodeInvalidTier, message, domainerror.ErrInvalidTier)
}
