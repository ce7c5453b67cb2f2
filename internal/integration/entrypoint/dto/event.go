package dto

import (
	"time"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// CreateEventRequest represents the request body for event creation.
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description,omitempty" binding:"omitempty,max=2000"`
	Staff       []string  `json:"staff,omitempty"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

// EventResponse represents a single event in API responses.
type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	CreatedBy   string    `json:"created_by"`
	Staff       []string  `json:"staff"`
	Status      string    `json:"status"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventListResponse represents a page of events.
type EventListResponse struct {
	Events     []EventResponse    `json:"events"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToEventResponse converts a domain Event.
func ToEventResponse(e *entity.Event) EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Type:        string(e.Type),
		CreatedBy:   e.CreatedBy.String(),
		Staff:       idStrings(e.Staff),
		Status:      string(e.Status),
		StartsAt:    e.StartsAt.UTC(),
		EndsAt:      e.EndsAt.UTC(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEventListResponse converts a listing result.
func ToEventListResponse(result *entity.EventListResult) EventListResponse {
	events := make([]EventResponse, len(result.Events))
	for i, e := range result.Events {
		events[i] = ToEventResponse(e)
	}
	return EventListResponse{
		Events: events,
		Pagination: PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
