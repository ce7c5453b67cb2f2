// Package notification contains notification-related use cases.
package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// Emitter records in-app notifications and queues the matching emails.
// It implements adapter.Notifier: every failure is logged and swallowed
// because the report change it announces is already committed.
type Emitter struct {
	notificationRepo adapter.NotificationRepository
	directory        adapter.PrincipalDirectory
	emailService     adapter.EmailService
}

// NewEmitter creates a new Emitter instance. The email service may be nil, in
// which case only in-app notifications are recorded.
func NewEmitter(
	notificationRepo adapter.NotificationRepository,
	directory adapter.PrincipalDirectory,
	emailService adapter.EmailService,
) *Emitter {
	return &Emitter{
		notificationRepo: notificationRepo,
		directory:        directory,
		emailService:     emailService,
	}
}

var _ adapter.Notifier = (*Emitter)(nil)

// Notify records the notification and queues an email to the recipient.
// It outlives the caller's cancellation since the report change is final.
func (e *Emitter) Notify(ctx context.Context, recipient entity.Principal, report *entity.Report, subject string) {
	ctx = context.WithoutCancel(ctx)
	log := zap.L().With(
		zap.String("recipient", recipient.String()),
		zap.String("report_id", report.ID.String()),
	)

	reportID := report.ID
	notification := entity.NewNotification(recipient, &reportID, subject, string(report.Status))
	if err := e.notificationRepo.Create(ctx, notification); err != nil {
		log.Error("failed to record notification", zap.Error(err))
		return
	}

	if e.emailService == nil {
		return
	}

	contact, err := e.directory.Resolve(ctx, recipient)
	if err != nil {
		log.Warn("notification recipient has no contact", zap.Error(err))
		return
	}

	err = e.emailService.QueueReportStatusEmail(ctx, adapter.QueueReportStatusInput{
		ReportID:       report.ID,
		RecipientEmail: contact.Email,
		RecipientName:  contact.Name,
		Subject:        subject,
		ReportLabel:    report.Label,
		ReportTitle:    report.Title,
		Status:         string(report.Status),
	})
	if err != nil {
		log.Warn("failed to queue notification email", zap.Error(err))
	}
}
