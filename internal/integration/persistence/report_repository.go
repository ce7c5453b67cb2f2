package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// lockedReportStatuses are the report statuses that hold their expenses exclusively.
var lockedReportStatuses = []string{
	string(entity.ReportStatusApproved),
	string(entity.ReportStatusReimbursed),
}

// reportRepository implements the adapter.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) adapter.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// CreateWithExpenses inserts the report and marks its expenses mapped.
func (r *reportRepository) CreateWithExpenses(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mapDraftedExpenses(tx, report.ExpenseIDs); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(model.ReportFromEntity(report)).Error; err != nil {
			return err
		}

		return createLinks(tx, model.ReportExpensesFromEntity(report))
	})
}

// CreateDraft inserts an empty drafted event report unless one already exists.
func (r *reportRepository) CreateDraft(ctx context.Context, report *entity.Report) (*entity.Report, error) {
	if report.EventID == nil {
		return nil, fmt.Errorf("draft report requires an event")
	}

	reportModel := model.ReportFromEntity(report)
	draftKey := fmt.Sprintf("%s:%s", *report.EventID, report.UserID)
	reportModel.DraftKey = &draftKey

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(reportModel).Error
	if err != nil {
		return nil, err
	}

	var stored model.ReportModel
	result := r.preloadExpenses(r.db.WithContext(ctx)).
		Where("draft_key = ?", draftKey).
		First(&stored)
	if result.Error != nil {
		return nil, result.Error
	}
	return stored.ToEntity(), nil
}

// FindByID retrieves a report with its ordered expense IDs.
func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error) {
	var reportModel model.ReportModel
	result := r.preloadExpenses(r.db.WithContext(ctx)).Where("id = ?", id).First(&reportModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReportNotFound
		}
		return nil, result.Error
	}
	return reportModel.ToEntity(), nil
}

// FindByEventAndUser retrieves the latest report a user filed for an event.
func (r *reportRepository) FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*entity.Report, error) {
	var reportModel model.ReportModel
	result := r.preloadExpenses(r.db.WithContext(ctx)).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Order("created_at DESC").
		First(&reportModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReportNotFound
		}
		return nil, result.Error
	}
	return reportModel.ToEntity(), nil
}

// FindLockedContaining returns an approved or reimbursed report holding any of the expenses.
func (r *reportRepository) FindLockedContaining(ctx context.Context, expenseIDs []uuid.UUID) (*entity.Report, error) {
	if len(expenseIDs) == 0 {
		return nil, nil
	}

	var reportModel model.ReportModel
	result := r.preloadExpenses(r.db.WithContext(ctx)).
		Joins("JOIN report_expenses ON report_expenses.report_id = reports.id").
		Where("report_expenses.expense_id IN ?", expenseIDs).
		Where("reports.status IN ?", lockedReportStatuses).
		Take(&reportModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return reportModel.ToEntity(), nil
}

// SumLockedInWindow sums the expenses of approved and reimbursed reports owned by the users.
func (r *reportRepository) SumLockedInWindow(ctx context.Context, userIDs []uuid.UUID, window valueobject.MonthWindow) (decimal.Decimal, error) {
	if len(userIDs) == 0 {
		return decimal.Zero, nil
	}

	var expenses []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Select("expenses.*").
		Joins("JOIN report_expenses ON report_expenses.expense_id = expenses.id").
		Joins("JOIN reports ON reports.id = report_expenses.report_id").
		Where("reports.user_id IN ?", userIDs).
		Where("reports.status IN ?", lockedReportStatuses).
		Where("reports.report_date >= ? AND reports.report_date < ?", window.Start, window.End).
		Find(&expenses)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total, nil
}

// Update saves the report's metadata, status and expense list.
func (r *reportRepository) Update(ctx context.Context, report *entity.Report, added, removed []uuid.UUID, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, report, expectedVersion, map[string]interface{}{
			"label":       report.Label,
			"sequence":    report.Sequence,
			"title":       report.Title,
			"description": report.Description,
			"status":      string(report.Status),
		}); err != nil {
			return err
		}

		if err := mapDraftedExpenses(tx, added); err != nil {
			return err
		}
		if err := setExpenseStatus(tx, removed, entity.ExpenseStatusDrafted); err != nil {
			return err
		}

		if err := tx.Where("report_id = ?", report.ID).Delete(&model.ReportExpenseModel{}).Error; err != nil {
			return err
		}
		return createLinks(tx, model.ReportExpensesFromEntity(report))
	})
}

// ApplyDecision saves an approval decision and the resulting expense statuses.
func (r *reportRepository) ApplyDecision(ctx context.Context, report *entity.Report, changes []adapter.ExpenseChange, expectedVersion int) error {
	approverKind, approverID := principalValues(report.Approver)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, report, expectedVersion, map[string]interface{}{
			"status":        string(report.Status),
			"reasons":       model.ReportFromEntity(report).Reasons,
			"approver_kind": approverKind,
			"approver_id":   approverID,
			"decided_at":    report.DecidedAt,
		}); err != nil {
			return err
		}

		for _, change := range changes {
			if err := setExpenseStatus(tx, change.IDs, change.Status); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkReimbursed saves a reimbursement together with its expense flips and deduction.
func (r *reportRepository) MarkReimbursed(ctx context.Context, report *entity.Report, deduction *entity.Deduction, expectedVersion int) error {
	reimburserKind, reimburserID := principalValues(report.Reimburser)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveVersioned(tx, report, expectedVersion, map[string]interface{}{
			"status":              string(report.Status),
			"reimburser_kind":     reimburserKind,
			"reimburser_id":       reimburserID,
			"finance_description": report.FinanceDescription,
			"reimbursed_at":       report.ReimbursedAt,
		}); err != nil {
			return err
		}

		if len(report.ExpenseIDs) > 0 {
			result := tx.Model(&model.ExpenseModel{}).
				Where("id IN ? AND status = ?", report.ExpenseIDs, string(entity.ExpenseStatusApproved)).
				Updates(map[string]interface{}{
					"status":     string(entity.ExpenseStatusReimbursed),
					"updated_at": report.UpdatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
		}

		if deduction == nil {
			return nil
		}
		return tx.Create(model.DeductionFromEntity(deduction)).Error
	})
}

// FindByFilter retrieves report summaries newest first with pagination.
func (r *reportRepository) FindByFilter(ctx context.Context, filter adapter.ReportFilter, pagination adapter.Pagination) (*entity.ReportListResult, error) {
	if len(filter.UserIDs) == 0 {
		return &entity.ReportListResult{
			Reports:    []*entity.ReportSummary{},
			Page:       pagination.Page,
			Limit:      pagination.Limit,
			TotalPages: 1,
		}, nil
	}

	query := r.db.WithContext(ctx).Model(&model.ReportModel{}).Where("user_id IN ?", filter.UserIDs)

	switch filter.Type {
	case adapter.ReportFilterEvent:
		query = query.Where("event_id IS NOT NULL")
	case adapter.ReportFilterGeneral:
		query = query.Where("event_id IS NULL")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.SubmittedOnly {
		query = query.Where("status <> ?", string(entity.ReportStatusDrafted))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var models []model.ReportModel
	result := r.preloadExpenses(query).
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	summaries, err := r.summarize(ctx, models)
	if err != nil {
		return nil, err
	}

	return &entity.ReportListResult{
		Reports:    summaries,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages(pagination, total),
	}, nil
}

// FindReimbursedInWindow retrieves summaries of reports reimbursed inside the window.
func (r *reportRepository) FindReimbursedInWindow(ctx context.Context, window valueobject.MonthWindow) ([]*entity.ReportSummary, error) {
	var models []model.ReportModel
	result := r.preloadExpenses(r.db.WithContext(ctx)).
		Where("status = ?", string(entity.ReportStatusReimbursed)).
		Where("reimbursed_at >= ? AND reimbursed_at < ?", window.Start, window.End).
		Order("reimbursed_at ASC, sequence ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.summarize(ctx, models)
}

// MaxSequence returns the highest report sequence ever assigned.
func (r *reportRepository) MaxSequence(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.WithContext(ctx).
		Model(&model.ReportModel{}).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&max).Error
	return max, err
}

// preloadExpenses loads expense links in their report order.
func (r *reportRepository) preloadExpenses(db *gorm.DB) *gorm.DB {
	return db.Preload("Expenses", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// summarize converts report models into summaries, totalling their expenses in one query.
func (r *reportRepository) summarize(ctx context.Context, models []model.ReportModel) ([]*entity.ReportSummary, error) {
	var expenseIDs []uuid.UUID
	for _, m := range models {
		for _, link := range m.Expenses {
			expenseIDs = append(expenseIDs, link.ExpenseID)
		}
	}

	amounts := make(map[uuid.UUID]decimal.Decimal, len(expenseIDs))
	if len(expenseIDs) > 0 {
		var expenses []model.ExpenseModel
		if err := r.db.WithContext(ctx).Where("id IN ?", expenseIDs).Find(&expenses).Error; err != nil {
			return nil, err
		}
		for _, e := range expenses {
			amounts[e.ID] = e.Amount
		}
	}

	summaries := make([]*entity.ReportSummary, len(models))
	for i := range models {
		total := decimal.Zero
		for _, link := range models[i].Expenses {
			total = total.Add(amounts[link.ExpenseID])
		}
		summaries[i] = &entity.ReportSummary{
			Report:       models[i].ToEntity(),
			TotalAmount:  total,
			ExpenseCount: len(models[i].Expenses),
		}
	}
	return summaries, nil
}

// saveVersioned writes the columns only if the stored version still matches,
// bumping the version on success.
func saveVersioned(tx *gorm.DB, report *entity.Report, expectedVersion int, columns map[string]interface{}) error {
	columns["version"] = expectedVersion + 1
	columns["updated_at"] = report.UpdatedAt

	result := tx.Model(&model.ReportModel{}).
		Where("id = ? AND version = ?", report.ID, expectedVersion).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrConcurrentUpdate
	}

	report.Version = expectedVersion + 1
	return nil
}

// mapDraftedExpenses flips drafted expenses to mapped. Every expense must still
// be drafted or nothing is written.
func mapDraftedExpenses(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	result := tx.Model(&model.ExpenseModel{}).
		Where("id IN ? AND status = ?", ids, string(entity.ExpenseStatusDrafted)).
		Update("status", string(entity.ExpenseStatusMapped))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return domainerror.ErrAlreadyMapped
	}
	return nil
}

// setExpenseStatus sets the status of the given expenses.
func setExpenseStatus(tx *gorm.DB, ids []uuid.UUID, status entity.ExpenseStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&model.ExpenseModel{}).
		Where("id IN ?", ids).
		Update("status", string(status)).Error
}

// createLinks stores report-expense links.
func createLinks(tx *gorm.DB, links []model.ReportExpenseModel) error {
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

// principalValues returns column values for an optional principal.
func principalValues(p *entity.Principal) (interface{}, interface{}) {
	if p == nil || p.IsZero() {
		return nil, nil
	}
	return string(p.Kind), p.ID
}
