package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// eventRepository implements the adapter.EventRepository interface.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository instance.
func NewEventRepository(db *gorm.DB) adapter.EventRepository {
	return &eventRepository{
		db: db,
	}
}

// Create creates a new event in the database.
func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Create(model.EventFromEntity(event)).Error
}

// FindByID retrieves an event by its ID with its current status.
func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var eventModel model.EventModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&eventModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEventNotFound
		}
		return nil, result.Error
	}
	return eventModel.ToEntity(time.Now().UTC()), nil
}

// FindByFilter retrieves events newest first with pagination.
func (r *eventRepository) FindByFilter(ctx context.Context, filter adapter.EventFilter, pagination adapter.Pagination) (*entity.EventListResult, error) {
	at := filter.At.UTC()
	if filter.At.IsZero() {
		at = time.Now().UTC()
	}

	query := r.db.WithContext(ctx).Model(&model.EventModel{})

	if filter.UserID != nil {
		// Staff is stored as a text array literal, so membership is a substring match on the ID.
		query = query.Where("created_by = ? OR staff LIKE ?", *filter.UserID, "%"+filter.UserID.String()+"%")
	}

	switch filter.Type {
	case adapter.EventFilterAdmin:
		query = query.Where("type = ?", string(entity.EventTypeAdmin))
	case adapter.EventFilterUser:
		query = query.Where("type = ?", string(entity.EventTypeUser))
	}

	if filter.Status != nil {
		switch *filter.Status {
		case entity.EventStatusUpcoming:
			query = query.Where("starts_at > ?", at)
		case entity.EventStatusCompleted:
			query = query.Where("ends_at < ?", at)
		case entity.EventStatusOngoing:
			query = query.Where("starts_at <= ? AND ends_at >= ?", at, at)
		}
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var models []model.EventModel
	result := query.
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.Event, len(models))
	for i := range models {
		events[i] = models[i].ToEntity(at)
	}

	return &entity.EventListResult{
		Events:     events,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages(pagination, total),
	}, nil
}
