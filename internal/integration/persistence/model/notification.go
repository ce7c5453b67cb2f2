package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientKind string     `gorm:"type:varchar(10);not null;index:idx_notifications_recipient"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	ReportID      *uuid.UUID `gorm:"type:uuid;index"`
	Subject       string     `gorm:"type:varchar(255);not null"`
	Status        string     `gorm:"type:varchar(20)"`
	Read          bool       `gorm:"not null;default:false"`
	CreatedAt     time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() *entity.Notification {
	return &entity.Notification{
		ID:        m.ID,
		Recipient: entity.Principal{Kind: entity.PrincipalKind(m.RecipientKind), ID: m.RecipientID},
		ReportID:  m.ReportID,
		Subject:   m.Subject,
		Status:    m.Status,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationFromEntity(n *entity.Notification) *NotificationModel {
	return &NotificationModel{
		ID:            n.ID,
		RecipientKind: string(n.Recipient.Kind),
		RecipientID:   n.Recipient.ID,
		ReportID:      n.ReportID,
		Subject:       n.Subject,
		Status:        n.Status,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}
