package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// EventModel represents the events table in the database. The lifecycle
// status is derived from the schedule window when read.
type EventModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Type        string         `gorm:"type:varchar(10);not null;index"`
	CreatedBy   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Staff       pq.StringArray `gorm:"type:text"`
	StartsAt    time.Time      `gorm:"not null"`
	EndsAt      time.Time      `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

// TableName returns the table name for the EventModel.
func (EventModel) TableName() string {
	return "events"
}

// ToEntity converts an EventModel to a domain Event entity with its status at now.
func (m *EventModel) ToEntity(now time.Time) *entity.Event {
	staff := make([]uuid.UUID, 0, len(m.Staff))
	for _, s := range m.Staff {
		id, err := uuid.Parse(s)
		if err != nil {
			zap.L().Warn("skipping malformed event staff id", zap.String("event_id", m.ID.String()), zap.String("staff", s))
			continue
		}
		staff = append(staff, id)
	}

	return &entity.Event{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        entity.EventType(m.Type),
		CreatedBy:   m.CreatedBy,
		Staff:       staff,
		Status:      entity.EventStatusAt(m.StartsAt, m.EndsAt, now),
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// EventFromEntity creates an EventModel from a domain Event entity.
func EventFromEntity(event *entity.Event) *EventModel {
	staff := make(pq.StringArray, len(event.Staff))
	for i, id := range event.Staff {
		staff[i] = id.String()
	}

	return &EventModel{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Type:        string(event.Type),
		CreatedBy:   event.CreatedBy,
		Staff:       staff,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}
