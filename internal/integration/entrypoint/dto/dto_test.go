package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/application/usecase/wallet"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

func TestReportResponses_UseDisplayDates(t *testing.T) {
	reportDate := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	r := entity.NewReport(uuid.New(), nil, "Client visit", "", []uuid.UUID{}, entity.ReportStatusPending, reportDate)

	t.Run("single report", func(t *testing.T) {
		assert.Equal(t, "Oct 16 2026", ToReportResponse(r).ReportDate)
	})

	t.Run("list summary", func(t *testing.T) {
		list := ToReportListResponse(&entity.ReportListResult{
			Reports: []*entity.ReportSummary{{Report: r, TotalAmount: decimal.NewFromInt(40), ExpenseCount: 1}},
			Page:    1,
			Limit:   20,
			Total:   1,
		})
		require.Len(t, list.Reports, 1)
		assert.Equal(t, "Oct 16 2026", list.Reports[0].ReportDate)
		assert.Equal(t, "40.00", list.Reports[0].TotalAmount)
	})

	t.Run("detail with expenses", func(t *testing.T) {
		expense := entity.NewExpense(r.UserID, "Taxi", "Travel", decimal.NewFromInt(12), time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), "")
		detail := ToReportDetailResponse(r, []*entity.Expense{expense}, expense.Amount)
		assert.Equal(t, "Oct 16 2026", detail.Report.ReportDate)
		require.Len(t, detail.Expenses, 1)
		assert.Equal(t, "Oct 03 2026", detail.Expenses[0].ExpenseDate)
	})
}

func TestToExpenseResponse_DisplaysDateInUTC(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	expense := entity.NewExpense(uuid.New(), "Dinner", "Meals", decimal.NewFromInt(30), time.Date(2026, 3, 31, 22, 0, 0, 0, saoPaulo), "")

	assert.Equal(t, "Apr 01 2026", ToExpenseResponse(expense).ExpenseDate)
}

func TestToWalletResponse_EntriesCarryDisplayDate(t *testing.T) {
	paidAt := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
	output := &wallet.GetWalletOutput{
		Wallet: &entity.Wallet{
			TotalAmount:   decimal.NewFromInt(500),
			TotalExpenses: decimal.Zero,
			BalanceAmount: decimal.NewFromInt(500),
			Entries: []*entity.WalletEntry{{
				RecordID:  "3f2a9c41-0000-4000-8000-000000000000",
				DisplayID: "#transaction_3f2a9c",
				Kind:      entity.WalletEntryCredit,
				Amount:    decimal.NewFromInt(500),
				Date:      paidAt,
			}},
		},
		Window: valueobject.CalendarMonth(paidAt, time.UTC),
	}

	response := ToWalletResponse(output)

	require.Len(t, response.Entries, 1)
	assert.Equal(t, "Mar 05 2026", response.Entries[0].DisplayDate)
	assert.True(t, paidAt.Equal(response.Entries[0].Date))
	assert.Equal(t, "500.00", response.BalanceAmount)
}
