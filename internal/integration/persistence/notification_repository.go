package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// notificationRepository implements the adapter.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance.
func NewNotificationRepository(db *gorm.DB) adapter.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create creates a new notification in the database.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Create(model.NotificationFromEntity(notification)).Error
}

// MarkRead flips the read flag of a notification owned by the recipient.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, recipient entity.Principal) error {
	result := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ? AND recipient_kind = ? AND recipient_id = ?", id, string(recipient.Kind), recipient.ID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrNotificationNotFound
	}
	return nil
}

// FindByFilter retrieves notifications newest first with pagination.
func (r *notificationRepository) FindByFilter(ctx context.Context, filter adapter.NotificationFilter, pagination adapter.Pagination) (*entity.NotificationListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("recipient_kind = ? AND recipient_id = ?", string(filter.Recipient.Kind), filter.Recipient.ID)
	if filter.UnreadOnly {
		query = query.Where("read = ?", false)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var models []model.NotificationModel
	result := query.
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	notifications := make([]*entity.Notification, len(models))
	for i := range models {
		notifications[i] = models[i].ToEntity()
	}

	return &entity.NotificationListResult{
		Notifications: notifications,
		Total:         total,
		Page:          pagination.Page,
		Limit:         pagination.Limit,
		TotalPages:    totalPages(pagination, total),
	}, nil
}
