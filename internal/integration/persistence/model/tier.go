package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// TierModel represents the tiers table in the database.
type TierModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title       string          `gorm:"type:varchar(100);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Categories []TierCategoryModel `gorm:"foreignKey:TierID;references:ID"`
}

// TableName returns the table name for the TierModel.
func (TierModel) TableName() string {
	return "tiers"
}

// TierCategoryModel represents the tier_categories table in the database.
type TierCategoryModel struct {
	TierID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Key       string          `gorm:"type:varchar(100);primaryKey"` // Lowercased title
	Title     string          `gorm:"type:varchar(100);not null"`
	MaxAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Enabled   bool            `gorm:"not null"`
	Position  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for the TierCategoryModel.
func (TierCategoryModel) TableName() string {
	return "tier_categories"
}

// ToEntity converts a TierModel with its categories to a domain Tier entity.
func (m *TierModel) ToEntity() *entity.Tier {
	categories := make([]entity.TierCategory, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = entity.TierCategory{
			Title:     c.Title,
			MaxAmount: c.MaxAmount,
			Enabled:   c.Enabled,
		}
	}

	return &entity.Tier{
		ID:          m.ID,
		Title:       m.Title,
		Categories:  categories,
		TotalAmount: m.TotalAmount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TierFromEntity creates a TierModel and its category rows from a domain Tier entity.
// keyFn normalizes category titles into their lookup key.
func TierFromEntity(tier *entity.Tier, keyFn func(string) string) *TierModel {
	categories := make([]TierCategoryModel, len(tier.Categories))
	for i, c := range tier.Categories {
		categories[i] = TierCategoryModel{
			TierID:    tier.ID,
			Key:       keyFn(c.Title),
			Title:     c.Title,
			MaxAmount: c.MaxAmount,
			Enabled:   c.Enabled,
			Position:  i,
		}
	}

	return &TierModel{
		ID:          tier.ID,
		Title:       tier.Title,
		TotalAmount: tier.TotalAmount,
		CreatedAt:   tier.CreatedAt,
		UpdatedAt:   tier.UpdatedAt,
		Categories:  categories,
	}
}
