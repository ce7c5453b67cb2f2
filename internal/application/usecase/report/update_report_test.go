package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/application/usecase/approval"
	"github.com/reimburse-desk/backend/internal/application/usecase/report"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/testutil"
)

func TestGetReport_EventDraftIsCreatedOnce(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, nil)
	event := h.fx.Event(entity.EventTypeUser, user.ID, march, march.Add(24*time.Hour))
	actor := entity.Actor{ID: user.ID, Role: entity.RoleStaff}

	first, err := h.get.Execute(context.Background(), report.GetReportInput{Actor: actor, ID: event.ID, IsEvent: true})
	require.NoError(t, err)
	second, err := h.get.Execute(context.Background(), report.GetReportInput{Actor: actor, ID: event.ID, IsEvent: true})
	require.NoError(t, err)

	assert.Equal(t, first.Report.ID, second.Report.ID)
	assert.Equal(t, entity.ReportStatusDrafted, first.Report.Status)
	assert.Equal(t, event.Title, first.Report.Title)
	assert.Empty(t, first.Report.Label)
	assert.True(t, first.TotalAmount.IsZero())
}

func TestUpdateReport_SubmitEventDraft(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, nil)
	event := h.fx.Event(entity.EventTypeUser, user.ID, march, march.Add(24*time.Hour))
	actor := entity.Actor{ID: user.ID, Role: entity.RoleStaff}
	expense := h.fx.Expense(user, "Travel", "40", march)

	draft, err := h.get.Execute(context.Background(), report.GetReportInput{Actor: actor, ID: event.ID, IsEvent: true})
	require.NoError(t, err)

	output, err := h.update.Execute(context.Background(), report.UpdateReportInput{
		UserID:     user.ID,
		ReportID:   draft.Report.ID,
		ExpenseIDs: []uuid.UUID{expense.ID},
		Submit:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, output.Report.Status)
	assert.Equal(t, "Rep#001", output.Report.Label)
	assert.Equal(t, []uuid.UUID{expense.ID}, output.Added)
	assert.Equal(t, entity.ExpenseStatusMapped, h.fx.ExpenseStatus(expense.ID))

	_, err = h.update.Execute(context.Background(), report.UpdateReportInput{
		UserID:   user.ID,
		ReportID: draft.Report.ID,
		Submit:   true,
	})
	assert.ErrorIs(t, err, domainerror.ErrInvalidTransition)
}

func TestUpdateReport_RemovingExpenseReleasesIt(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, nil)
	keep := h.fx.Expense(user, "Travel", "40", march)
	drop := h.fx.Expense(user, "Travel", "60", march)

	created, err := h.submit(t, user, keep, drop)
	require.NoError(t, err)

	output, err := h.update.Execute(context.Background(), report.UpdateReportInput{
		UserID:     user.ID,
		ReportID:   created.ID,
		ExpenseIDs: []uuid.UUID{keep.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{drop.ID}, output.Removed)
	assert.Equal(t, entity.ExpenseStatusDrafted, h.fx.ExpenseStatus(drop.ID))
	assert.Equal(t, entity.ExpenseStatusMapped, h.fx.ExpenseStatus(keep.ID))
	assert.Equal(t, []uuid.UUID{keep.ID}, h.fx.Report(created.ID).ExpenseIDs)
}

func TestUpdateReport_Guards(t *testing.T) {
	h := newHarness(t)
	approver := h.fx.User(entity.RoleApprover, nil, nil)
	approverPrincipal := entity.UserPrincipal(approver.ID)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, &approverPrincipal)
	other := h.fx.User(entity.RoleStaff, tier, nil)
	expense := h.fx.Expense(user, "Travel", "40", march)

	created, err := h.submit(t, user, expense)
	require.NoError(t, err)

	title := "Renamed"
	_, err = h.update.Execute(context.Background(), report.UpdateReportInput{
		UserID:   other.ID,
		ReportID: created.ID,
		Title:    &title,
	})
	assert.ErrorIs(t, err, domainerror.ErrReportAccessDenied)
	assert.Equal(t, domainerror.KindForbidden, domainerror.KindOf(err))

	_, err = h.decide.Execute(context.Background(), approval.DecideApprovalInput{
		Actor:      entity.Actor{ID: approver.ID, Role: entity.RoleApprover},
		ReportID:   created.ID,
		Status:     entity.ReportStatusApproved,
		ExpenseIDs: []uuid.UUID{expense.ID},
	})
	require.NoError(t, err)

	_, err = h.update.Execute(context.Background(), report.UpdateReportInput{
		UserID:   user.ID,
		ReportID: created.ID,
		Title:    &title,
	})
	assert.ErrorIs(t, err, domainerror.ErrReportImmutable)
	assert.Equal(t, domainerror.KindStateConflict, domainerror.KindOf(err))
}
