package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// TierCategoryRequest is one category limit in a tier upsert.
type TierCategoryRequest struct {
	Title     string          `json:"title" binding:"required"`
	MaxAmount decimal.Decimal `json:"max_amount"`
	Enabled   bool            `json:"enabled"`
}

// UpsertTierRequest represents the request body for creating or replacing a tier.
type UpsertTierRequest struct {
	Title       string                `json:"title" binding:"required,min=1,max=100"`
	Categories  []TierCategoryRequest `json:"categories" binding:"dive"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
}

// TierCategoryResponse is one category limit of a tier.
type TierCategoryResponse struct {
	Title     string `json:"title"`
	MaxAmount string `json:"max_amount"`
	Enabled   bool   `json:"enabled"`
}

// TierResponse represents a tier in API responses.
type TierResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Categories  []TierCategoryResponse `json:"categories"`
	TotalAmount string                 `json:"total_amount"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ToTierCategories converts request categories to domain values.
func ToTierCategories(categories []TierCategoryRequest) []entity.TierCategory {
	out := make([]entity.TierCategory, len(categories))
	for i, c := range categories {
		out[i] = entity.TierCategory{Title: c.Title, MaxAmount: c.MaxAmount, Enabled: c.Enabled}
	}
	return out
}

// ToTierResponse converts a domain Tier.
func ToTierResponse(t *entity.Tier) TierResponse {
	categories := make([]TierCategoryResponse, len(t.Categories))
	for i, c := range t.Categories {
		categories[i] = TierCategoryResponse{
			Title:     c.Title,
			MaxAmount: money(c.MaxAmount),
			Enabled:   c.Enabled,
		}
	}
	return TierResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Categories:  categories,
		TotalAmount: money(t.TotalAmount),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
