// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification informs a principal about a report status change.
type Notification struct {
	ID        uuid.UUID
	Recipient Principal
	ReportID  *uuid.UUID
	Subject   string
	Status    string
	Read      bool
	CreatedAt time.Time
}

// NewNotification creates a new unread Notification entity.
func NewNotification(recipient Principal, reportID *uuid.UUID, subject, status string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		Recipient: recipient,
		ReportID:  reportID,
		Subject:   subject,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

// NotificationListResult represents a page of notifications.
type NotificationListResult struct {
	Notifications []*Notification
	Total         int64
	Page          int
	Limit         int
	TotalPages    int
}
