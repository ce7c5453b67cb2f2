package email

import (
	"context"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// Service queues notification emails for the worker to deliver.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service. appBaseURL is linked from every email.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueReportStatusEmail queues an email about a report status change.
func (s *Service) QueueReportStatusEmail(ctx context.Context, input adapter.QueueReportStatusInput) error {
	templateData := map[string]interface{}{
		"recipient_name": input.RecipientName,
		"report_label":   input.ReportLabel,
		"report_title":   input.ReportTitle,
		"status":         input.Status,
		"app_url":        s.appBaseURL,
	}

	reportID := input.ReportID
	job := entity.NewEmailJob(
		entity.TemplateReportStatus,
		&reportID,
		input.RecipientEmail,
		input.RecipientName,
		input.Subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.New(domainerror.ErrCodeEmailQueueFailed, "failed to queue report status email", err)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
