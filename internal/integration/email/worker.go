package email

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
	retention    time.Duration
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Retention    time.Duration // How long sent jobs are kept
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		Retention:    30 * 24 * time.Hour,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.Retention <= 0 {
		config.Retention = defaults.Retention
	}
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		retention:    config.Retention,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	zap.L().Info("email worker started",
		zap.Duration("poll_interval", w.pollInterval),
		zap.Int("batch_size", w.batchSize),
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		case <-cleanup.C:
			w.purgeSent(ctx)
		}
	}
}

// ProcessNow processes pending emails immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, time.Now().UTC(), w.batchSize)
	if err != nil {
		zap.L().Error("failed to get pending email jobs", zap.Error(err))
		return
	}
	if len(jobs) == 0 {
		return
	}

	zap.L().Debug("processing email batch", zap.Int("count", len(jobs)))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := zap.L().With(
		zap.String("job_id", job.ID.String()),
		zap.String("template", string(job.TemplateType)),
		zap.String("recipient", job.RecipientEmail),
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("failed to mark job as processing", zap.Error(err))
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("failed to render email template", zap.Error(err))
		w.handleFailure(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("failed to send email", zap.Error(err))
		w.handleFailure(ctx, job, err, errors.Is(err, domainerror.ErrPermanentEmailFailure))
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("failed to mark job as sent", zap.Error(err))
		return
	}

	logger.Info("email sent", zap.String("provider_id", result.ProviderID))
}

func (w *Worker) renderTemplate(job *entity.EmailJob) (string, string, error) {
	switch job.TemplateType {
	case entity.TemplateReportStatus:
		return w.renderer.Render(string(job.TemplateType), templates.ReportStatusData{
			RecipientName: getString(job.TemplateData, "recipient_name"),
			ReportLabel:   getString(job.TemplateData, "report_label"),
			ReportTitle:   getString(job.TemplateData, "report_title"),
			Status:        getString(job.TemplateData, "status"),
			Subject:       job.Subject,
			AppURL:        getString(job.TemplateData, "app_url"),
		})
	default:
		return "", "", domainerror.New(domainerror.ErrCodeInvalidTemplate, "unknown template type", domainerror.ErrInvalidTemplate)
	}
}

func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		zap.L().Error("failed to update job after failure", zap.String("job_id", job.ID.String()), zap.Error(updateErr))
	}

	if job.Status == entity.EmailStatusFailed {
		zap.L().Warn("email job permanently failed",
			zap.String("job_id", job.ID.String()),
			zap.Int("attempts", job.Attempts),
			zap.String("last_error", job.LastError),
		)
		return
	}
	zap.L().Info("email job scheduled for retry",
		zap.String("job_id", job.ID.String()),
		zap.Int("attempts", job.Attempts),
		zap.Time("scheduled_at", job.ScheduledAt),
	)
}

func (w *Worker) purgeSent(ctx context.Context) {
	deleted, err := w.queue.DeleteSentBefore(ctx, time.Now().UTC().Add(-w.retention))
	if err != nil {
		zap.L().Error("failed to purge sent email jobs", zap.Error(err))
		return
	}
	if deleted > 0 {
		zap.L().Info("purged sent email jobs", zap.Int64("count", deleted))
	}
}

// getString safely extracts a string from a map.
func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
