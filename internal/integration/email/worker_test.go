package email

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (q *memoryQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memoryQueue) GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var jobs []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) && len(jobs) < limit {
			copied := *job
			jobs = append(jobs, &copied)
		}
	}
	return jobs, nil
}

func (q *memoryQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	return q.Create(ctx, job)
}

func (q *memoryQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *q.jobs[id]
	return &copied, nil
}

func (q *memoryQueue) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func queueReportEmail(t *testing.T, queue adapter.EmailQueueRepository) uuid.UUID {
	t.Helper()
	service := NewService(queue, "https://desk.example.com")
	require.NoError(t, service.QueueReportStatusEmail(context.Background(), adapter.QueueReportStatusInput{
		RecipientEmail: "ana@example.com",
		RecipientName:  "Ana",
		Subject:        "Rep#007 approved",
		ReportLabel:    "Rep#007",
		ReportTitle:    "Client visit",
		Status:         "approved",
	}))
	for id := range queue.(*memoryQueue).jobs {
		return id
	}
	t.Fatal("no job queued")
	return uuid.Nil
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, WorkerConfig{})
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and sends a report status email", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		id := queueReportEmail(t, queue)

		newTestWorker(t, queue, sender).ProcessNow(ctx)

		sent := sender.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "ana@example.com", sent[0].To)
		assert.Equal(t, "Rep#007 approved", sent[0].Subject)
		assert.Contains(t, sent[0].HTML, "Client visit")
		assert.Contains(t, sent[0].Text, "Status: approved")

		job, err := queue.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.EmailStatusSent, job.Status)
		assert.Equal(t, "mock-1", job.ProviderID)
	})

	t.Run("permanent failures are not retried", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("422 validation"), true)
		id := queueReportEmail(t, queue)

		newTestWorker(t, queue, sender).ProcessNow(ctx)

		job, err := queue.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.EmailStatusFailed, job.Status)
		assert.Equal(t, 1, job.Attempts)
	})

	t.Run("temporary failures are rescheduled", func(t *testing.T) {
		queue := newMemoryQueue()
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("503 unavailable"), false)
		id := queueReportEmail(t, queue)

		newTestWorker(t, queue, sender).ProcessNow(ctx)

		job, err := queue.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entity.EmailStatusPending, job.Status)
		assert.Equal(t, 1, job.Attempts)
		assert.NotEmpty(t, job.LastError)
	})
}

func TestClassifySendError(t *testing.T) {
	assert.ErrorContains(t, classifySendError(errors.New("403 Forbidden")), "permanent")
	assert.ErrorContains(t, classifySendError(errors.New("429 rate limited")), "temporary")
}
