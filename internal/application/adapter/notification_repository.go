// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// NotificationFilter defines filter options for listing notifications.
type NotificationFilter struct {
	Recipient  entity.Principal
	UnreadOnly bool
}

// NotificationRepository defines the interface for notification persistence operations.
type NotificationRepository interface {
	// Create creates a new notification in the database.
	Create(ctx context.Context, notification *entity.Notification) error

	// MarkRead flips the read flag of a notification owned by the recipient.
	MarkRead(ctx context.Context, id uuid.UUID, recipient entity.Principal) error

	// FindByFilter retrieves notifications newest first with pagination.
	FindByFilter(ctx context.Context, filter NotificationFilter, pagination Pagination) (*entity.NotificationListResult, error)
}
