package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/application/usecase/notification"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/adapters"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
	"github.com/reimburse-desk/backend/internal/testutil"
)

type recordingEmailService struct {
	queued  []adapter.QueueReportStatusInput
	ctxErrs []error
	err     error
}

func (s *recordingEmailService) QueueReportStatusEmail(ctx context.Context, input adapter.QueueReportStatusInput) error {
	s.queued = append(s.queued, input)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

type notificationSuite struct {
	fx     *testutil.Fixtures
	repo   adapter.NotificationRepository
	emails *recordingEmailService
	emit   *notification.Emitter
	list   *notification.ListNotificationsUseCase
	mark   *notification.MarkReadUseCase
}

func newNotificationSuite(t *testing.T) *notificationSuite {
	t.Helper()
	db := testutil.NewDB(t)
	repo := persistence.NewNotificationRepository(db)
	emails := &recordingEmailService{}
	directory := adapters.NewPrincipalDirectory(persistence.NewUserRepository(db), persistence.NewAdminRepository(db))

	return &notificationSuite{
		fx:     testutil.NewFixtures(t, db),
		repo:   repo,
		emails: emails,
		emit:   notification.NewEmitter(repo, directory, emails),
		list:   notification.NewListNotificationsUseCase(repo),
		mark:   notification.NewMarkReadUseCase(repo),
	}
}

func sampleReport(owner uuid.UUID) *entity.Report {
	r := entity.NewReport(owner, nil, "Client visit", "", []uuid.UUID{}, entity.ReportStatusPending, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	r.Label = "Rep#007"
	return r
}

func TestEmitter_RecordsAndQueuesEmail(t *testing.T) {
	s := newNotificationSuite(t)
	user := s.fx.User(entity.RoleStaff, nil, nil)
	recipient := entity.UserPrincipal(user.ID)

	report := sampleReport(user.ID)
	s.emit.Notify(context.Background(), recipient, report, "Rep#007 submitted for approval")

	require.Len(t, s.emails.queued, 1)
	assert.Equal(t, report.ID, s.emails.queued[0].ReportID)
	assert.Equal(t, user.Email, s.emails.queued[0].RecipientEmail)
	assert.Equal(t, "Rep#007", s.emails.queued[0].ReportLabel)
	assert.Equal(t, string(entity.ReportStatusPending), s.emails.queued[0].Status)

	output, err := s.list.Execute(context.Background(), notification.ListNotificationsInput{
		Actor: entity.Actor{ID: user.ID, Role: entity.RoleStaff},
	})
	require.NoError(t, err)
	require.Len(t, output.Result.Notifications, 1)
	assert.Equal(t, "Rep#007 submitted for approval", output.Result.Notifications[0].Subject)
	assert.False(t, output.Result.Notifications[0].Read)
}

func TestEmitter_OutlivesCancelledRequest(t *testing.T) {
	s := newNotificationSuite(t)
	user := s.fx.User(entity.RoleStaff, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.emit.Notify(ctx, entity.UserPrincipal(user.ID), sampleReport(user.ID), "Rep#007 approved")

	require.Len(t, s.emails.queued, 1)
	assert.NoError(t, s.emails.ctxErrs[0])

	output, err := s.list.Execute(context.Background(), notification.ListNotificationsInput{
		Actor: entity.Actor{ID: user.ID, Role: entity.RoleStaff},
	})
	require.NoError(t, err)
	require.Len(t, output.Result.Notifications, 1)
	assert.Equal(t, "Rep#007 approved", output.Result.Notifications[0].Subject)
}

func TestEmitter_SwallowsDeliveryFailures(t *testing.T) {
	s := newNotificationSuite(t)
	user := s.fx.User(entity.RoleStaff, nil, nil)
	s.emails.err = errors.New("queue unavailable")

	assert.NotPanics(t, func() {
		s.emit.Notify(context.Background(), entity.UserPrincipal(user.ID), sampleReport(user.ID), "update")
	})

	unknown := entity.AdminPrincipal(uuid.New())
	s.emit.Notify(context.Background(), unknown, sampleReport(user.ID), "update")
	assert.Len(t, s.emails.queued, 1, "unknown recipients get no email")

	output, err := s.list.Execute(context.Background(), notification.ListNotificationsInput{
		Actor: entity.Actor{ID: unknown.ID, Role: entity.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Len(t, output.Result.Notifications, 1, "the in-app record is kept")
}

func TestMarkRead(t *testing.T) {
	s := newNotificationSuite(t)
	user := s.fx.User(entity.RoleStaff, nil, nil)
	actor := entity.Actor{ID: user.ID, Role: entity.RoleStaff}
	s.emit.Notify(context.Background(), actor.Principal(), sampleReport(user.ID), "first")
	s.emit.Notify(context.Background(), actor.Principal(), sampleReport(user.ID), "second")

	listed, err := s.list.Execute(context.Background(), notification.ListNotificationsInput{Actor: actor})
	require.NoError(t, err)
	require.Len(t, listed.Result.Notifications, 2)
	target := listed.Result.Notifications[0].ID

	stranger := entity.Actor{ID: uuid.New(), Role: entity.RoleStaff}
	err = s.mark.Execute(context.Background(), notification.MarkReadInput{Actor: stranger, NotificationID: target})
	assert.ErrorIs(t, err, domainerror.ErrNotificationNotFound)

	require.NoError(t, s.mark.Execute(context.Background(), notification.MarkReadInput{Actor: actor, NotificationID: target}))

	unread, err := s.list.Execute(context.Background(), notification.ListNotificationsInput{Actor: actor, Filter: notification.FilterUnread})
	require.NoError(t, err)
	require.Len(t, unread.Result.Notifications, 1)
	assert.NotEqual(t, target, unread.Result.Notifications[0].ID)

	_, err = s.list.Execute(context.Background(), notification.ListNotificationsInput{Actor: actor, Filter: "archived"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidNotificationFilter)
}
