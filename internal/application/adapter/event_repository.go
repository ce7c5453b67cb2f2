// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// EventFilterType selects which events a listing returns.
type EventFilterType string

const (
	EventFilterAll   EventFilterType = "all"
	EventFilterAdmin EventFilterType = "admin"
	EventFilterUser  EventFilterType = "user"
)

// IsValid reports whether the filter type is known.
func (f EventFilterType) IsValid() bool {
	return f == EventFilterAll || f == EventFilterAdmin || f == EventFilterUser
}

// EventFilter defines filter options for listing events.
// A nil UserID lists every event; otherwise only events the user created or staffs.
// Status is evaluated against the schedule window at the instant At.
type EventFilter struct {
	UserID *uuid.UUID
	Type   EventFilterType
	Status *entity.EventStatus
	At     time.Time
}

// EventRepository defines the interface for event persistence operations.
type EventRepository interface {
	// Create creates a new event in the database.
	Create(ctx context.Context, event *entity.Event) error

	// FindByID retrieves an event by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)

	// FindByFilter retrieves events newest first with pagination.
	FindByFilter(ctx context.Context, filter EventFilter, pagination Pagination) (*entity.EventListResult, error)
}
