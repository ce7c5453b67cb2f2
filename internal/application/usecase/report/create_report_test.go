package report_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/internal/application/usecase/approval"
	"github.com/reimburse-desk/backend/internal/application/usecase/report"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
	"github.com/reimburse-desk/backend/internal/testutil"
)

var march = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type harness struct {
	db       *gorm.DB
	fx       *testutil.Fixtures
	clock    *testutil.FixedClock
	notifier *testutil.RecordingNotifier
	create   *report.CreateReportUseCase
	update   *report.UpdateReportUseCase
	get      *report.GetReportUseCase
	decide   *approval.DecideApprovalUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewDB(t)
	clock := testutil.NewFixedClock(march)
	notifier := &testutil.RecordingNotifier{}

	expenseRepo := persistence.NewExpenseRepository(db)
	reportRepo := persistence.NewReportRepository(db)
	userRepo := persistence.NewUserRepository(db)
	tierRepo := persistence.NewTierRepository(db)
	eventRepo := persistence.NewEventRepository(db)
	sequence := persistence.NewReportSequence(db)

	return &harness{
		db:       db,
		fx:       testutil.NewFixtures(t, db),
		clock:    clock,
		notifier: notifier,
		create:   report.NewCreateReportUseCase(expenseRepo, reportRepo, userRepo, tierRepo, eventRepo, sequence, notifier, clock),
		update:   report.NewUpdateReportUseCase(expenseRepo, reportRepo, userRepo, tierRepo, eventRepo, sequence, notifier, clock),
		get:      report.NewGetReportUseCase(reportRepo, expenseRepo, eventRepo, clock),
		decide:   approval.NewDecideApprovalUseCase(reportRepo, userRepo, notifier, clock),
	}
}

func (h *harness) submit(t *testing.T, user *entity.User, expenses ...*entity.Expense) (*entity.Report, error) {
	t.Helper()
	ids := make([]uuid.UUID, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	output, err := h.create.Execute(context.Background(), report.CreateReportInput{
		UserID:     user.ID,
		Title:      "March trip",
		ExpenseIDs: ids,
	})
	if err != nil {
		return nil, err
	}
	return output.Report, nil
}

func TestCreateReport_CategoryLimitLeavesExpensesDrafted(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 200))
	user := h.fx.User(entity.RoleStaff, tier, nil)
	flight := h.fx.Expense(user, "Travel", "120", march)
	hotel := h.fx.Expense(user, "travel", "90", march)

	_, err := h.submit(t, user, flight, hotel)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrCategoryLimitExceeded)
	assert.Equal(t, domainerror.KindPolicyViolation, domainerror.KindOf(err))
	assert.Equal(t, entity.ExpenseStatusDrafted, h.fx.ExpenseStatus(flight.ID))
	assert.Equal(t, entity.ExpenseStatusDrafted, h.fx.ExpenseStatus(hotel.ID))
	assert.Empty(t, h.notifier.Calls())
}

func TestCreateReport_PolicyRejections(t *testing.T) {
	tests := []struct {
		name     string
		category entity.TierCategory
		expense  string
		amount   string
		want     error
	}{
		{"category missing from tier", testutil.Category("Travel", 200), "Meals", "10", domainerror.ErrCategoryNotAllowed},
		{"category disabled", entity.TierCategory{Title: "Meals", Enabled: false}, "meals", "10", domainerror.ErrCategoryDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tier := h.fx.Tier(1000, tt.category)
			user := h.fx.User(entity.RoleStaff, tier, nil)
			expense := h.fx.Expense(user, tt.expense, tt.amount, march)

			_, err := h.submit(t, user, expense)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domainerror.KindPolicyViolation, domainerror.KindOf(err))
		})
	}
}

func TestCreateReport_CapIsInclusive(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(200, testutil.Category("Travel", 200))
	user := h.fx.User(entity.RoleStaff, tier, nil)

	created, err := h.submit(t, user, h.fx.Expense(user, "Travel", "200", march))

	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, created.Status)
}

func TestCreateReport_AssignsSequentialLabels(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(10000, testutil.Category("Travel", 1000))
	user := h.fx.User(entity.RoleStaff, tier, nil)

	var labels []string
	for i := 0; i < 3; i++ {
		created, err := h.submit(t, user, h.fx.Expense(user, "Travel", "10", march))
		require.NoError(t, err)
		labels = append(labels, created.Label)
	}

	assert.Equal(t, []string{"Rep#001", "Rep#002", "Rep#003"}, labels)
}

func TestCreateReport_MapsExpensesAndNotifies(t *testing.T) {
	h := newHarness(t)
	approver := h.fx.User(entity.RoleApprover, nil, nil)
	approverPrincipal := entity.UserPrincipal(approver.ID)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, &approverPrincipal)
	expense := h.fx.Expense(user, "Travel", "75.50", march)

	created, err := h.submit(t, user, expense)
	require.NoError(t, err)

	assert.Equal(t, entity.ExpenseStatusMapped, h.fx.ExpenseStatus(expense.ID))
	stored := h.fx.Report(created.ID)
	assert.Equal(t, []uuid.UUID{expense.ID}, stored.ExpenseIDs)
	assert.Equal(t, march, stored.ReportDate.UTC())

	calls := h.notifier.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, entity.UserPrincipal(user.ID), calls[0].Recipient)
	assert.Equal(t, approverPrincipal, calls[1].Recipient)
	assert.Equal(t, entity.ReportStatusPending, calls[0].Status)
}

func TestCreateReport_ExpenseBelongsToOneReport(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, nil)
	shared := h.fx.Expense(user, "Travel", "50", march)

	_, err := h.submit(t, user, shared)
	require.NoError(t, err)

	_, err = h.submit(t, user, shared, h.fx.Expense(user, "Travel", "20", march))

	assert.ErrorIs(t, err, domainerror.ErrAlreadyMapped)
	assert.Equal(t, domainerror.KindStateConflict, domainerror.KindOf(err))
}

func TestCreateReport_ExpenseInsideApprovedReportIsRefused(t *testing.T) {
	h := newHarness(t)
	approver := h.fx.User(entity.RoleApprover, nil, nil)
	approverPrincipal := entity.UserPrincipal(approver.ID)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, &approverPrincipal)
	flight := h.fx.Expense(user, "Travel", "100", march)

	approved, err := h.submit(t, user, flight)
	require.NoError(t, err)
	_, err = h.decide.Execute(context.Background(), approval.DecideApprovalInput{
		Actor:      entity.Actor{ID: approver.ID, Role: entity.RoleApprover},
		ReportID:   approved.ID,
		Status:     entity.ReportStatusApproved,
		ExpenseIDs: []uuid.UUID{flight.ID},
	})
	require.NoError(t, err)

	// The expense row lost its status but is still linked to the approved report.
	require.NoError(t, h.db.Model(&model.ExpenseModel{}).
		Where("id = ?", flight.ID).
		Update("status", string(entity.ExpenseStatusDrafted)).Error)
	taxi := h.fx.Expense(user, "Travel", "20", march)

	_, err = h.submit(t, user, flight, taxi)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrExpenseAlreadyReported)
	assert.Equal(t, domainerror.KindStateConflict, domainerror.KindOf(err))
	assert.Contains(t, err.Error(), approved.Label)
	assert.Equal(t, entity.ExpenseStatusDrafted, h.fx.ExpenseStatus(flight.ID))
	assert.Equal(t, entity.ExpenseStatusDrafted, h.fx.ExpenseStatus(taxi.ID))
	assert.Equal(t, entity.ReportStatusApproved, h.fx.Report(approved.ID).Status)
}

func TestCreateReport_RejectsForeignAndEmptyInput(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	owner := h.fx.User(entity.RoleStaff, tier, nil)
	other := h.fx.User(entity.RoleStaff, tier, nil)
	expense := h.fx.Expense(owner, "Travel", "50", march)

	_, err := h.submit(t, other, expense)
	assert.ErrorIs(t, err, domainerror.ErrExpenseNotOwned)

	_, err = h.submit(t, owner)
	assert.ErrorIs(t, err, domainerror.ErrEmptyExpenseList)
	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
}

func TestCreateReport_TierMonthlyTotalCountsEveryTierMember(t *testing.T) {
	h := newHarness(t)
	approver := h.fx.User(entity.RoleApprover, nil, nil)
	approverPrincipal := entity.UserPrincipal(approver.ID)
	tier := h.fx.Tier(500, testutil.Category("Travel", 500))
	colleague := h.fx.User(entity.RoleStaff, tier, &approverPrincipal)
	user := h.fx.User(entity.RoleStaff, tier, nil)

	spent := h.fx.Expense(colleague, "Travel", "450", march)
	colleagueReport, err := h.submit(t, colleague, spent)
	require.NoError(t, err)

	_, err = h.decide.Execute(context.Background(), approval.DecideApprovalInput{
		Actor:      entity.Actor{ID: approver.ID, Role: entity.RoleApprover},
		ReportID:   colleagueReport.ID,
		Status:     entity.ReportStatusApproved,
		ExpenseIDs: []uuid.UUID{spent.ID},
	})
	require.NoError(t, err)

	_, err = h.submit(t, user, h.fx.Expense(user, "Travel", "100", march))

	assert.ErrorIs(t, err, domainerror.ErrTierLimitExceeded)
	assert.Equal(t, domainerror.KindPolicyViolation, domainerror.KindOf(err))

	h.clock.Set(time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC))
	_, err = h.submit(t, user, h.fx.Expense(user, "Travel", "100", march))
	assert.NoError(t, err, "a new month starts with a fresh allowance")
}

func TestCreateReport_AdminEventBypassesPolicy(t *testing.T) {
	h := newHarness(t)
	admin := h.fx.Admin()
	tier := h.fx.Tier(100, testutil.Category("Travel", 50))
	user := h.fx.User(entity.RoleStaff, tier, nil)
	event := h.fx.Event(entity.EventTypeAdmin, admin.ID, march.Add(-time.Hour), march.Add(48*time.Hour))
	expense := h.fx.Expense(user, "Lodging", "900", march)

	output, err := h.create.Execute(context.Background(), report.CreateReportInput{
		UserID:     user.ID,
		EventID:    &event.ID,
		Title:      "Offsite",
		ExpenseIDs: []uuid.UUID{expense.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, &event.ID, output.Report.EventID)
	assert.Equal(t, entity.ExpenseStatusMapped, h.fx.ExpenseStatus(expense.ID))
}

func TestCreateReport_ConcurrentSubmissionsGetDistinctLabels(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(100000, testutil.Category("Travel", 1000))
	user := h.fx.User(entity.RoleStaff, tier, nil)

	const workers = 8
	expenses := make([]*entity.Expense, workers)
	for i := range expenses {
		expenses[i] = h.fx.Expense(user, "Travel", "10", march)
	}

	var wg sync.WaitGroup
	labels := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := h.submit(t, user, expenses[i])
			errs[i] = err
			if err == nil {
				labels[i] = created.Label
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[labels[i]], "duplicate label %s", labels[i])
		seen[labels[i]] = true
	}
	for i := 1; i <= workers; i++ {
		assert.True(t, seen[fmt.Sprintf("Rep#%03d", i)])
	}
}
