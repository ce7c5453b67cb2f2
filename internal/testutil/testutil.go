// Package testutil provides shared fixtures for package tests: an isolated
// SQLite database per test, a fixed clock and a recording notifier.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// NewDB opens a migrated in-memory database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// FixedClock always returns the same instant.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock creates a clock stopped at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t.UTC()}
}

// Now returns the stored instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t.UTC()
}

// Notification is one call recorded by RecordingNotifier.
type Notification struct {
	Recipient entity.Principal
	ReportID  uuid.UUID
	Status    entity.ReportStatus
	Subject   string
}

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu    sync.Mutex
	calls []Notification
}

// Notify records the call.
func (n *RecordingNotifier) Notify(_ context.Context, recipient entity.Principal, report *entity.Report, subject string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, Notification{
		Recipient: recipient,
		ReportID:  report.ID,
		Status:    report.Status,
		Subject:   subject,
	})
}

// Calls returns a copy of the recorded notifications.
func (n *RecordingNotifier) Calls() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.calls...)
}

// Fixtures creates rows through the production repositories.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

// NewFixtures binds fixture helpers to db.
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

// Category is a shorthand for an enabled tier category.
func Category(title string, maxAmount int64) entity.TierCategory {
	return entity.TierCategory{Title: title, MaxAmount: decimal.NewFromInt(maxAmount), Enabled: true}
}

// Tier stores a tier with the given categories and overall monthly cap.
func (f *Fixtures) Tier(totalAmount int64, categories ...entity.TierCategory) *entity.Tier {
	f.t.Helper()
	tier := entity.NewTier("Tier "+uuid.NewString()[:6], categories, decimal.NewFromInt(totalAmount))
	require.NoError(f.t, persistence.NewTierRepository(f.db).Upsert(context.Background(), tier))
	return tier
}

// User stores a user on the tier, reviewed by approver when non-nil.
func (f *Fixtures) User(role entity.Role, tier *entity.Tier, approver *entity.Principal) *entity.User {
	f.t.Helper()
	var tierID *uuid.UUID
	if tier != nil {
		tierID = &tier.ID
	}
	id := uuid.NewString()[:8]
	user := entity.NewUser(id+"@example.com", "User "+id, role, tierID, approver)
	require.NoError(f.t, persistence.NewUserRepository(f.db).Create(context.Background(), user))
	return user
}

// Admin stores an admin account.
func (f *Fixtures) Admin() *entity.Admin {
	f.t.Helper()
	id := uuid.NewString()[:8]
	admin := entity.NewAdmin(id+"@example.com", "Admin "+id)
	require.NoError(f.t, persistence.NewAdminRepository(f.db).Create(context.Background(), admin))
	return admin
}

// Expense stores a drafted expense owned by user.
func (f *Fixtures) Expense(user *entity.User, category string, amount string, date time.Time) *entity.Expense {
	f.t.Helper()
	expense := entity.NewExpense(user.ID, category+" expense", category, decimal.RequireFromString(amount), date, "")
	require.NoError(f.t, persistence.NewExpenseRepository(f.db).Create(context.Background(), expense))
	return expense
}

// Event stores an event of the given type spanning the window.
func (f *Fixtures) Event(eventType entity.EventType, createdBy uuid.UUID, startsAt, endsAt time.Time) *entity.Event {
	f.t.Helper()
	event := entity.NewEvent("Event "+uuid.NewString()[:6], "", eventType, createdBy, nil, startsAt, endsAt, startsAt)
	require.NoError(f.t, persistence.NewEventRepository(f.db).Create(context.Background(), event))
	return event
}

// ExpenseStatus reads an expense's current status from storage.
func (f *Fixtures) ExpenseStatus(id uuid.UUID) entity.ExpenseStatus {
	f.t.Helper()
	expense, err := persistence.NewExpenseRepository(f.db).FindByID(context.Background(), id)
	require.NoError(f.t, err)
	return expense.Status
}

// Report reads a report from storage.
func (f *Fixtures) Report(id uuid.UUID) *entity.Report {
	f.t.Helper()
	report, err := persistence.NewReportRepository(f.db).FindByID(context.Background(), id)
	require.NoError(f.t, err)
	return report
}
