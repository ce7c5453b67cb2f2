// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueReportStatusEmail queues an email about a report status change.
	QueueReportStatusEmail(ctx context.Context, input QueueReportStatusInput) error
}

// QueueReportStatusInput represents the input for queueing a report status email.
type QueueReportStatusInput struct {
	ReportID       uuid.UUID
	RecipientEmail string
	RecipientName  string
	Subject        string
	ReportLabel    string
	ReportTitle    string
	Status         string
}
