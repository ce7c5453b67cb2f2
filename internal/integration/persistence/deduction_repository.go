package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// deductionRepository implements the adapter.DeductionRepository interface.
type deductionRepository struct {
	db *gorm.DB
}

// NewDeductionRepository creates a new deduction repository instance.
func NewDeductionRepository(db *gorm.DB) adapter.DeductionRepository {
	return &deductionRepository{
		db: db,
	}
}

// Create creates a new deduction in the database.
func (r *deductionRepository) Create(ctx context.Context, deduction *entity.Deduction) error {
	return r.db.WithContext(ctx).Create(model.DeductionFromEntity(deduction)).Error
}

// FindActiveWalletInWindow retrieves a user's active wallet deductions created inside the window.
func (r *deductionRepository) FindActiveWalletInWindow(ctx context.Context, userID uuid.UUID, window valueobject.MonthWindow) ([]*entity.Deduction, error) {
	var models []model.DeductionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND mode = ? AND active = ?", userID, string(entity.DeductionModeWallet), true).
		Where("created_at >= ? AND created_at < ?", window.Start, window.End).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDeductions(models), nil
}

// FindByReports retrieves deductions linked to any of the reports.
func (r *deductionRepository) FindByReports(ctx context.Context, reportIDs []uuid.UUID) ([]*entity.Deduction, error) {
	if len(reportIDs) == 0 {
		return []*entity.Deduction{}, nil
	}

	var models []model.DeductionModel
	if err := r.db.WithContext(ctx).Where("report_id IN ?", reportIDs).Find(&models).Error; err != nil {
		return nil, err
	}
	return toDeductions(models), nil
}

func toDeductions(models []model.DeductionModel) []*entity.Deduction {
	deductions := make([]*entity.Deduction, len(models))
	for i := range models {
		deductions[i] = models[i].ToEntity()
	}
	return deductions
}
