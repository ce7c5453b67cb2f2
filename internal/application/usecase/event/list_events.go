package event

import (
	"context"
	"fmt"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// ListEventsInput represents the input for listing events.
type ListEventsInput struct {
	Actor  entity.Actor
	Page   int
	Filter adapter.EventFilterType // Defaults to all
	Status *entity.EventStatus
}

// ListEventsOutput represents a page of events.
type ListEventsOutput struct {
	Result *entity.EventListResult
}

// ListEventsUseCase handles event listing logic.
type ListEventsUseCase struct {
	eventRepo adapter.EventRepository
	clock     adapter.Clock
}

// NewListEventsUseCase creates a new ListEventsUseCase instance.
func NewListEventsUseCase(eventRepo adapter.EventRepository, clock adapter.Clock) *ListEventsUseCase {
	return &ListEventsUseCase{
		eventRepo: eventRepo,
		clock:     clock,
	}
}

// Execute performs the event listing. Administrators see every event, other
// callers only the events they created or are staffed on.
func (uc *ListEventsUseCase) Execute(ctx context.Context, input ListEventsInput) (*ListEventsOutput, error) {
	filterType := input.Filter
	if filterType == "" {
		filterType = adapter.EventFilterAll
	}
	if !filterType.IsValid() {
		return nil, domainerror.New(domainerror.ErrCodeInvalidEventFilter, "filter must be one of all, admin or user", domainerror.ErrInvalidEventFilter)
	}

	if input.Status != nil {
		switch *input.Status {
		case entity.EventStatusUpcoming, entity.EventStatusOngoing, entity.EventStatusCompleted:
		default:
			return nil, domainerror.New(domainerror.ErrCodeInvalidEventFilter, fmt.Sprintf("unknown event status %q", *input.Status), domainerror.ErrInvalidEventFilter)
		}
	}

	filter := adapter.EventFilter{Type: filterType, Status: input.Status, At: uc.clock.Now().UTC()}
	if input.Actor.Role != entity.RoleAdmin {
		userID := input.Actor.ID
		filter.UserID = &userID
	}

	result, err := uc.eventRepo.FindByFilter(ctx, filter, adapter.NewPagination(input.Page))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return &ListEventsOutput{Result: result}, nil
}
