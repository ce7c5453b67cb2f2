package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
	"github.com/reimburse-desk/backend/internal/testutil"
)

var march = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type stubAnalyzer struct {
	available bool
	scores    *entity.ReceiptScores
	err       error
	requests  []*adapter.ReceiptAnalysisRequest
}

func (s *stubAnalyzer) Analyze(_ context.Context, request *adapter.ReceiptAnalysisRequest) (*entity.ReceiptScores, error) {
	s.requests = append(s.requests, request)
	return s.scores, s.err
}

func (s *stubAnalyzer) IsAvailable() bool {
	return s.available
}

type expenseSuite struct {
	db      *gorm.DB
	fx      *testutil.Fixtures
	repo    adapter.ExpenseRepository
	create  *CreateExpenseUseCase
	list    *ListExpensesUseCase
	user    *entity.User
	analyze *stubAnalyzer
}

func newExpenseSuite(t *testing.T) *expenseSuite {
	t.Helper()
	db := testutil.NewDB(t)
	repo := persistence.NewExpenseRepository(db)
	analyzer := &stubAnalyzer{available: true}
	create := NewCreateExpenseUseCase(repo, persistence.NewUserRepository(db), analyzer, testutil.NewFixedClock(march))
	create.async = func(f func()) { f() }
	fx := testutil.NewFixtures(t, db)

	return &expenseSuite{
		db:      db,
		fx:      fx,
		repo:    repo,
		create:  create,
		list:    NewListExpensesUseCase(repo),
		user:    fx.User(entity.RoleStaff, nil, nil),
		analyze: analyzer,
	}
}

func TestCreateExpense_StoresDraftedExpense(t *testing.T) {
	s := newExpenseSuite(t)

	output, err := s.create.Execute(context.Background(), CreateExpenseInput{
		UserID:   s.user.ID,
		Title:    "  Airport taxi ",
		Category: "Travel",
		Amount:   decimal.RequireFromString("42.50"),
	})

	require.NoError(t, err)
	assert.False(t, output.AnalysisQueued)
	assert.Equal(t, "Airport taxi", output.Expense.Title)
	assert.Equal(t, entity.ExpenseStatusDrafted, output.Expense.Status)
	assert.True(t, march.Equal(output.Expense.ExpenseDate))
	assert.Empty(t, s.analyze.requests)

	stored, err := s.repo.FindByID(context.Background(), output.Expense.ID)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("42.50")))
}

func TestCreateExpense_ReceiptAnalysisStoresScores(t *testing.T) {
	s := newExpenseSuite(t)
	s.analyze.scores = &entity.ReceiptScores{AmountMatch: 0.9, CategoryMatch: 0.8, Authenticity: 0.95, Summary: "taxi receipt", AnalyzedAt: march}

	output, err := s.create.Execute(context.Background(), CreateExpenseInput{
		UserID:          s.user.ID,
		Title:           "Airport taxi",
		Category:        "Travel",
		Amount:          decimal.NewFromInt(40),
		ReceiptImage:    []byte{0xff, 0xd8, 0xff},
		ReceiptMIMEType: "image/jpeg",
	})

	require.NoError(t, err)
	assert.True(t, output.AnalysisQueued)
	require.Len(t, s.analyze.requests, 1)
	assert.Equal(t, "Travel", s.analyze.requests[0].Category)

	stored, err := s.repo.FindByID(context.Background(), output.Expense.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AIScores)
	assert.Equal(t, "taxi receipt", stored.AIScores.Summary)
	assert.InDelta(t, 0.95, stored.AIScores.Authenticity, 0.0001)
}

func TestCreateExpense_AnalysisFailureKeepsExpense(t *testing.T) {
	s := newExpenseSuite(t)
	s.analyze.err = errors.New("model unavailable")

	output, err := s.create.Execute(context.Background(), CreateExpenseInput{
		UserID:       s.user.ID,
		Title:        "Lunch",
		Category:     "Meals",
		Amount:       decimal.NewFromInt(12),
		ReceiptImage: []byte{0x89, 0x50},
	})

	require.NoError(t, err)
	stored, err := s.repo.FindByID(context.Background(), output.Expense.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AIScores)
}

func TestCreateExpense_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input func(user uuid.UUID) CreateExpenseInput
		want  error
	}{
		{"missing title", func(user uuid.UUID) CreateExpenseInput {
			return CreateExpenseInput{UserID: user, Title: " ", Category: "Travel", Amount: decimal.NewFromInt(1)}
		}, domainerror.ErrMissingTitle},
		{"missing category", func(user uuid.UUID) CreateExpenseInput {
			return CreateExpenseInput{UserID: user, Title: "Taxi", Amount: decimal.NewFromInt(1)}
		}, domainerror.ErrMissingCategory},
		{"negative amount", func(user uuid.UUID) CreateExpenseInput {
			return CreateExpenseInput{UserID: user, Title: "Taxi", Category: "Travel", Amount: decimal.NewFromInt(-1)}
		}, domainerror.ErrInvalidAmount},
		{"unknown user", func(uuid.UUID) CreateExpenseInput {
			return CreateExpenseInput{UserID: uuid.New(), Title: "Taxi", Category: "Travel", Amount: decimal.NewFromInt(1)}
		}, domainerror.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newExpenseSuite(t)

			_, err := s.create.Execute(context.Background(), tt.input(s.user.ID))

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListExpenses_Filters(t *testing.T) {
	s := newExpenseSuite(t)
	drafted := s.fx.Expense(s.user, "Travel", "10", march)
	reported := s.fx.Expense(s.user, "Travel", "20", march)
	require.NoError(t, s.db.Model(&model.ExpenseModel{}).Where("id = ?", reported.ID).Update("status", string(entity.ExpenseStatusMapped)).Error)
	other := s.fx.User(entity.RoleStaff, nil, nil)
	s.fx.Expense(other, "Travel", "30", march)

	all, err := s.list.Execute(context.Background(), ListExpensesInput{UserID: s.user.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Result.Total)

	unreported, err := s.list.Execute(context.Background(), ListExpensesInput{UserID: s.user.ID, Filter: adapter.ExpenseFilterUnreported})
	require.NoError(t, err)
	require.Len(t, unreported.Result.Expenses, 1)
	assert.Equal(t, drafted.ID, unreported.Result.Expenses[0].ID)

	mapped := entity.ExpenseStatusMapped
	byStatus, err := s.list.Execute(context.Background(), ListExpensesInput{UserID: s.user.ID, Status: &mapped})
	require.NoError(t, err)
	require.Len(t, byStatus.Result.Expenses, 1)
	assert.Equal(t, reported.ID, byStatus.Result.Expenses[0].ID)

	_, err = s.list.Execute(context.Background(), ListExpensesInput{UserID: s.user.ID, Filter: "archived"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidExpenseFilter)
}
