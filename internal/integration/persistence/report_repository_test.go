package persistence_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
	"github.com/reimburse-desk/backend/internal/testutil"
)

var march = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestReportRepository_CreateWithExpensesIsAllOrNothing(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := persistence.NewReportRepository(db)
	user := fx.User(entity.RoleStaff, nil, nil)
	first := fx.Expense(user, "Travel", "10", march)
	second := fx.Expense(user, "Travel", "20", march)

	report := entity.NewReport(user.ID, nil, "First", "", []uuid.UUID{first.ID}, entity.ReportStatusPending, march)
	require.NoError(t, repo.CreateWithExpenses(context.Background(), report))

	overlapping := entity.NewReport(user.ID, nil, "Second", "", []uuid.UUID{second.ID, first.ID}, entity.ReportStatusPending, march)
	err := repo.CreateWithExpenses(context.Background(), overlapping)

	assert.ErrorIs(t, err, domainerror.ErrAlreadyMapped)
	assert.Equal(t, entity.ExpenseStatusDrafted, fx.ExpenseStatus(second.ID))
	_, err = repo.FindByID(context.Background(), overlapping.ID)
	assert.ErrorIs(t, err, domainerror.ErrReportNotFound)

	stored, err := repo.FindByID(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, stored.ExpenseIDs)
}

func TestReportRepository_StaleVersionIsRejected(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := persistence.NewReportRepository(db)
	user := fx.User(entity.RoleStaff, nil, nil)
	expense := fx.Expense(user, "Travel", "10", march)

	report := entity.NewReport(user.ID, nil, "Trip", "", []uuid.UUID{expense.ID}, entity.ReportStatusPending, march)
	require.NoError(t, repo.CreateWithExpenses(context.Background(), report))

	winner := fx.Report(report.ID)
	loser := fx.Report(report.ID)

	winner.TransitionTo(entity.ReportStatusApproved)
	require.NoError(t, repo.ApplyDecision(context.Background(), winner, nil, winner.Version))

	loser.TransitionTo(entity.ReportStatusRejected)
	err := repo.ApplyDecision(context.Background(), loser, nil, loser.Version)

	assert.ErrorIs(t, err, domainerror.ErrConcurrentUpdate)
	assert.Equal(t, entity.ReportStatusApproved, fx.Report(report.ID).Status)
}

func TestReportRepository_CreateDraftIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := persistence.NewReportRepository(db)
	user := fx.User(entity.RoleStaff, nil, nil)
	event := fx.Event(entity.EventTypeUser, user.ID, march, march.Add(time.Hour))

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 4)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			draft := entity.NewReport(user.ID, &event.ID, event.Title, "", []uuid.UUID{}, entity.ReportStatusDrafted, march)
			stored, err := repo.CreateDraft(context.Background(), draft)
			if assert.NoError(t, err) {
				ids[i] = stored.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
}

func TestReportRepository_SumLockedInWindow(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := persistence.NewReportRepository(db)
	user := fx.User(entity.RoleStaff, nil, nil)

	lock := func(amount string, date time.Time, status entity.ReportStatus) {
		expense := fx.Expense(user, "Travel", amount, date)
		report := entity.NewReport(user.ID, nil, "Trip", "", []uuid.UUID{expense.ID}, entity.ReportStatusPending, date)
		require.NoError(t, repo.CreateWithExpenses(context.Background(), report))
		if status == entity.ReportStatusPending {
			return
		}
		report.TransitionTo(entity.ReportStatusApproved)
		require.NoError(t, repo.ApplyDecision(context.Background(), report, nil, report.Version))
	}

	lock("100", march, entity.ReportStatusApproved)
	lock("40", march, entity.ReportStatusPending)
	lock("70", march.AddDate(0, -1, 0), entity.ReportStatusApproved)

	sum, err := repo.SumLockedInWindow(context.Background(), []uuid.UUID{user.ID}, valueobject.CalendarMonth(march, time.UTC))

	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(100)), "got %s", sum)
}

func TestReportSequence_IsMonotonic(t *testing.T) {
	db := testutil.NewDB(t)
	sequence := persistence.NewReportSequence(db)

	var previous int64
	for i := 0; i < 5; i++ {
		next, err := sequence.Next(context.Background())
		require.NoError(t, err)
		assert.Greater(t, next, previous)
		previous = next
	}
}

func TestReportRepository_SequenceIsUniqueOnceAssigned(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := persistence.NewReportRepository(db)
	user := fx.User(entity.RoleStaff, nil, nil)

	numbered := func(sequence int64) *entity.Report {
		expense := fx.Expense(user, "Travel", "10", march)
		report := entity.NewReport(user.ID, nil, "Trip", "", []uuid.UUID{expense.ID}, entity.ReportStatusPending, march)
		report.Sequence = sequence
		report.Label = valueobject.FormatReportLabel(sequence)
		return report
	}

	require.NoError(t, repo.CreateWithExpenses(context.Background(), numbered(7)))

	duplicate := numbered(7)
	require.Error(t, repo.CreateWithExpenses(context.Background(), duplicate))
	_, err := repo.FindByID(context.Background(), duplicate.ID)
	assert.ErrorIs(t, err, domainerror.ErrReportNotFound)

	for i := 0; i < 2; i++ {
		expense := fx.Expense(user, "Travel", "10", march)
		unnumbered := entity.NewReport(user.ID, nil, "Draft", "", []uuid.UUID{expense.ID}, entity.ReportStatusDrafted, march)
		assert.NoError(t, repo.CreateWithExpenses(context.Background(), unnumbered))
	}
}
