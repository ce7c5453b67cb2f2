package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// MarkReadInput represents the input for marking a notification as read.
type MarkReadInput struct {
	Actor          entity.Actor
	NotificationID uuid.UUID
}

// MarkReadUseCase handles marking notifications as read.
type MarkReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(notificationRepo adapter.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute marks the caller's notification as read. Notifications of other
// principals are reported as not found.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input MarkReadInput) error {
	if err := uc.notificationRepo.MarkRead(ctx, input.NotificationID, input.Actor.Principal()); err != nil {
		if errors.Is(err, domainerror.ErrNotificationNotFound) {
			return domainerror.New(domainerror.ErrCodeNotificationNotFound, "notification not found", domainerror.ErrNotificationNotFound)
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
