package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// tierRepository implements the adapter.TierRepository interface.
type tierRepository struct {
	db *gorm.DB
}

// NewTierRepository creates a new tier repository instance.
func NewTierRepository(db *gorm.DB) adapter.TierRepository {
	return &tierRepository{
		db: db,
	}
}

// FindByID retrieves a tier with its categories in their configured order.
func (r *tierRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tier, error) {
	var tierModel model.TierModel
	result := r.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&tierModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTierNotFound
		}
		return nil, result.Error
	}
	return tierModel.ToEntity(), nil
}

// Upsert creates the tier or replaces its title, categories and total.
func (r *tierRepository) Upsert(ctx context.Context, tier *entity.Tier) error {
	tierModel := model.TierFromEntity(tier, valueobject.CategoryKey)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "total_amount", "updated_at"}),
		}).Omit(clause.Associations).Create(tierModel).Error
		if err != nil {
			return err
		}

		if err := tx.Where("tier_id = ?", tier.ID).Delete(&model.TierCategoryModel{}).Error; err != nil {
			return err
		}

		if len(tierModel.Categories) == 0 {
			return nil
		}
		return tx.Create(&tierModel.Categories).Error
	})
}
