// Package event contains event-related use cases.
package event

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// CreateEventInput represents the input for event creation.
type CreateEventInput struct {
	Actor       entity.Actor
	Title       string
	Description string
	Staff       []uuid.UUID
	StartsAt    time.Time
	EndsAt      time.Time
}

// CreateEventOutput represents the output of event creation.
type CreateEventOutput struct {
	Event *entity.Event
}

// CreateEventUseCase handles event creation logic.
type CreateEventUseCase struct {
	eventRepo adapter.EventRepository
	clock     adapter.Clock
}

// NewCreateEventUseCase creates a new CreateEventUseCase instance.
func NewCreateEventUseCase(eventRepo adapter.EventRepository, clock adapter.Clock) *CreateEventUseCase {
	return &CreateEventUseCase{
		eventRepo: eventRepo,
		clock:     clock,
	}
}

// Execute performs the event creation. Events created by administrators are
// organization events and their reports bypass policy limits.
func (uc *CreateEventUseCase) Execute(ctx context.Context, input CreateEventInput) (*CreateEventOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.New(domainerror.ErrCodeMissingEventTitle, "event title is required", nil)
	}

	if input.EndsAt.Before(input.StartsAt) {
		return nil, domainerror.New(domainerror.ErrCodeInvalidEventWindow, "event end must not be before its start", domainerror.ErrInvalidEventWindow)
	}

	eventType := entity.EventTypeUser
	if input.Actor.Role == entity.RoleAdmin {
		eventType = entity.EventTypeAdmin
	}

	staff := input.Staff
	if staff == nil {
		staff = []uuid.UUID{}
	}

	event := entity.NewEvent(title, input.Description, eventType, input.Actor.ID, staff, input.StartsAt.UTC(), input.EndsAt.UTC(), uc.clock.Now())
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, domainerror.New(domainerror.ErrCodeEventStorage, "failed to create event", err)
	}

	return &CreateEventOutput{Event: event}, nil
}
