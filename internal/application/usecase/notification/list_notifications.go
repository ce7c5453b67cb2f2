package notification

import (
	"context"
	"fmt"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// FilterType selects which notifications a listing returns.
type FilterType string

const (
	FilterAll    FilterType = "all"
	FilterUnread FilterType = "unread"
)

// ListNotificationsInput represents the input for listing notifications.
type ListNotificationsInput struct {
	Actor  entity.Actor
	Page   int
	Filter FilterType // Defaults to all
}

// ListNotificationsOutput represents a page of notifications.
type ListNotificationsOutput struct {
	Result *entity.NotificationListResult
}

// ListNotificationsUseCase handles notification listing logic.
type ListNotificationsUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewListNotificationsUseCase creates a new ListNotificationsUseCase instance.
func NewListNotificationsUseCase(notificationRepo adapter.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute performs the notification listing.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, input ListNotificationsInput) (*ListNotificationsOutput, error) {
	var unreadOnly bool
	switch input.Filter {
	case "", FilterAll:
	case FilterUnread:
		unreadOnly = true
	default:
		return nil, domainerror.New(domainerror.ErrCodeInvalidNotificationFilter, "filter must be all or unread", domainerror.ErrInvalidNotificationFilter)
	}

	filter := adapter.NotificationFilter{
		Recipient:  input.Actor.Principal(),
		UnreadOnly: unreadOnly,
	}

	result, err := uc.notificationRepo.FindByFilter(ctx, filter, adapter.NewPagination(input.Page))
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return &ListNotificationsOutput{Result: result}, nil
}
