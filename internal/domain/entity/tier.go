// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TierCategory is a spending category allowed by a tier.
type TierCategory struct {
	Title     string
	MaxAmount decimal.Decimal // Monthly cap for the category
	Enabled   bool
}

// Tier is the spending policy attached to a group of users.
type Tier struct {
	ID          uuid.UUID
	Title       string
	Categories  []TierCategory
	TotalAmount decimal.Decimal // Overall monthly cap
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTier creates a new Tier entity.
func NewTier(title string, categories []TierCategory, totalAmount decimal.Decimal) *Tier {
	now := time.Now().UTC()
	return &Tier{
		ID:          uuid.New(),
		Title:       title,
		Categories:  categories,
		TotalAmount: totalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
