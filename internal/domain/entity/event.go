// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventType tells who organized an event.
type EventType string

const (
	EventTypeAdmin EventType = "Admin"
	EventTypeUser  EventType = "User"
)

// EventStatus represents the lifecycle of an event.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
)

// Event groups spending around an occasion such as a trip or an offsite.
// Reports attached to an Admin event skip policy-limit checks.
type Event struct {
	ID          uuid.UUID
	Title       string
	Description string
	Type        EventType
	CreatedBy   uuid.UUID
	Staff       []uuid.UUID
	Status      EventStatus
	StartsAt    time.Time
	EndsAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent creates a new Event entity with its status derived from now.
func NewEvent(title, description string, eventType EventType, createdBy uuid.UUID, staff []uuid.UUID, startsAt, endsAt, now time.Time) *Event {
	return &Event{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Type:        eventType,
		CreatedBy:   createdBy,
		Staff:       staff,
		Status:      EventStatusAt(startsAt, endsAt, now),
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
}

// EventStatusAt derives the status of a schedule window at the given instant.
func EventStatusAt(startsAt, endsAt, now time.Time) EventStatus {
	switch {
	case now.Before(startsAt):
		return EventStatusUpcoming
	case now.After(endsAt):
		return EventStatusCompleted
	default:
		return EventStatusOngoing
	}
}

// BypassesPolicy reports whether reports on this event skip limit checks.
func (e *Event) BypassesPolicy() bool {
	return e.Type == EventTypeAdmin
}

// EventListResult represents a page of events.
type EventListResult struct {
	Events     []*Event
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
