// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindByIDs retrieves the users with the given IDs.
func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return []*entity.User{}, nil
	}

	var models []model.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(models))
	for i := range models {
		users[i] = models[i].ToEntity()
	}
	return users, nil
}

// FindIDsByTier returns the IDs of every user assigned to the tier.
func (r *userRepository) FindIDsByTier(ctx context.Context, tierID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("tier_id = ?", tierID).
		Pluck("id", &ids).Error
	return ids, err
}

// FindIDsByApprover returns the IDs of every user whose approver is the given principal.
func (r *userRepository) FindIDsByApprover(ctx context.Context, approver entity.Principal) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("approver_kind = ? AND approver_id = ?", string(approver.Kind), approver.ID).
		Pluck("id", &ids).Error
	return ids, err
}

// adminRepository implements the adapter.AdminRepository interface.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository instance.
func NewAdminRepository(db *gorm.DB) adapter.AdminRepository {
	return &adminRepository{
		db: db,
	}
}

// Create creates a new administrator in the database.
func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	return r.db.WithContext(ctx).Create(model.AdminFromEntity(admin)).Error
}

// FindByID retrieves an administrator by ID.
func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	var adminModel model.AdminModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&adminModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return adminModel.ToEntity(), nil
}
