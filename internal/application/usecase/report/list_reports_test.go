package report_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/application/usecase/approval"
	"github.com/reimburse-desk/backend/internal/application/usecase/report"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
	"github.com/reimburse-desk/backend/internal/testutil"
)

type capturingExporter struct {
	month string
	rows  []*adapter.ReimbursementRow
}

func (e *capturingExporter) ExportReimbursements(_ context.Context, month string, rows []*adapter.ReimbursementRow) ([]byte, error) {
	e.month = month
	e.rows = rows
	return []byte("xlsx"), nil
}

func TestListReports_OwnReportsWithTotals(t *testing.T) {
	h := newHarness(t)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, nil)
	other := h.fx.User(entity.RoleStaff, tier, nil)

	_, err := h.submit(t, user, h.fx.Expense(user, "Travel", "40", march), h.fx.Expense(user, "Travel", "2.50", march))
	require.NoError(t, err)
	_, err = h.submit(t, other, h.fx.Expense(other, "Travel", "10", march))
	require.NoError(t, err)

	list := report.NewListReportsUseCase(persistence.NewReportRepository(h.db))
	output, err := list.Execute(context.Background(), report.ListReportsInput{UserID: user.ID})

	require.NoError(t, err)
	require.Len(t, output.Result.Reports, 1)
	summary := output.Result.Reports[0]
	assert.Equal(t, 2, summary.ExpenseCount)
	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("42.50")))

	bad := entity.ReportStatus("archived")
	_, err = list.Execute(context.Background(), report.ListReportsInput{UserID: user.ID, Status: &bad})
	assert.ErrorIs(t, err, domainerror.ErrInvalidReportFilter)
}

func TestListApprovals_OnlyApproveesSubmittedReports(t *testing.T) {
	h := newHarness(t)
	approver := h.fx.User(entity.RoleApprover, nil, nil)
	principal := entity.UserPrincipal(approver.ID)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	approvee := h.fx.User(entity.RoleStaff, tier, &principal)
	stranger := h.fx.User(entity.RoleStaff, tier, nil)

	submitted, err := h.submit(t, approvee, h.fx.Expense(approvee, "Travel", "40", march))
	require.NoError(t, err)
	_, err = h.submit(t, stranger, h.fx.Expense(stranger, "Travel", "40", march))
	require.NoError(t, err)

	list := report.NewListApprovalsUseCase(persistence.NewReportRepository(h.db), persistence.NewUserRepository(h.db))

	output, err := list.Execute(context.Background(), report.ListApprovalsInput{
		Actor: entity.Actor{ID: approver.ID, Role: entity.RoleApprover},
	})
	require.NoError(t, err)
	require.Len(t, output.Result.Reports, 1)
	assert.Equal(t, submitted.ID, output.Result.Reports[0].Report.ID)

	empty, err := list.Execute(context.Background(), report.ListApprovalsInput{
		Actor: entity.Actor{ID: uuid.New(), Role: entity.RoleApprover},
	})
	require.NoError(t, err)
	assert.Empty(t, empty.Result.Reports)

	_, err = list.Execute(context.Background(), report.ListApprovalsInput{
		Actor: entity.Actor{ID: approvee.ID, Role: entity.RoleStaff},
	})
	assert.ErrorIs(t, err, domainerror.ErrInsufficientRole)
}

func TestExportReimbursements(t *testing.T) {
	h := newHarness(t)
	approver := h.fx.User(entity.RoleApprover, nil, nil)
	principal := entity.UserPrincipal(approver.ID)
	tier := h.fx.Tier(1000, testutil.Category("Travel", 500))
	user := h.fx.User(entity.RoleStaff, tier, &principal)
	finance := entity.Actor{ID: h.fx.User(entity.RoleFinance, nil, nil).ID, Role: entity.RoleFinance}

	expense := h.fx.Expense(user, "Travel", "75", march)
	created, err := h.submit(t, user, expense)
	require.NoError(t, err)
	_, err = h.decide.Execute(context.Background(), approval.DecideApprovalInput{
		Actor:      entity.Actor{ID: approver.ID, Role: entity.RoleApprover},
		ReportID:   created.ID,
		Status:     entity.ReportStatusApproved,
		ExpenseIDs: []uuid.UUID{expense.ID},
	})
	require.NoError(t, err)

	reportRepo := persistence.NewReportRepository(h.db)
	deductions := persistence.NewDeductionRepository(h.db)
	reimburse := approval.NewReimburseUseCase(reportRepo, h.notifier, h.clock)
	_, err = reimburse.Execute(context.Background(), approval.ReimburseInput{
		Actor:              finance,
		ReportID:           created.ID,
		FinanceDescription: "batch 12",
		DeductionAmount:    decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	exporter := &capturingExporter{}
	export := report.NewExportReimbursementsUseCase(reportRepo, persistence.NewUserRepository(h.db), deductions, exporter)

	output, err := export.Execute(context.Background(), report.ExportReimbursementsInput{Actor: finance, Month: "2026-03"})
	require.NoError(t, err)
	assert.Equal(t, "reimbursements-2026-03.xlsx", output.Filename)
	assert.Equal(t, 1, output.Rows)
	require.Len(t, exporter.rows, 1)
	row := exporter.rows[0]
	assert.Equal(t, created.Label, row.Label)
	assert.Equal(t, user.Email, row.OwnerEmail)
	assert.True(t, row.TotalAmount.Equal(decimal.NewFromInt(75)))
	assert.True(t, row.DeductionAmount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "batch 12", row.FinanceDescription)

	april, err := export.Execute(context.Background(), report.ExportReimbursementsInput{Actor: finance, Month: "2026-04"})
	require.NoError(t, err)
	assert.Zero(t, april.Rows)

	_, err = export.Execute(context.Background(), report.ExportReimbursementsInput{Actor: finance, Month: "March"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidExportMonth)
}
