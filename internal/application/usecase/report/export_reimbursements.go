package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// ExportReimbursementsInput represents the input for a finance export.
type ExportReimbursementsInput struct {
	Actor entity.Actor
	Month string // YYYY-MM
}

// ExportReimbursementsOutput is the rendered workbook.
type ExportReimbursementsOutput struct {
	Filename string
	Content  []byte
	Rows     int
}

// ExportReimbursementsUseCase renders every report reimbursed in a month.
type ExportReimbursementsUseCase struct {
	reportRepo    adapter.ReportRepository
	userRepo      adapter.UserRepository
	deductionRepo adapter.DeductionRepository
	exporter      adapter.ReportExporter
}

// NewExportReimbursementsUseCase creates a new ExportReimbursementsUseCase instance.
func NewExportReimbursementsUseCase(
	reportRepo adapter.ReportRepository,
	userRepo adapter.UserRepository,
	deductionRepo adapter.DeductionRepository,
	exporter adapter.ReportExporter,
) *ExportReimbursementsUseCase {
	return &ExportReimbursementsUseCase{
		reportRepo:    reportRepo,
		userRepo:      userRepo,
		deductionRepo: deductionRepo,
		exporter:      exporter,
	}
}

// Execute performs the export.
func (uc *ExportReimbursementsUseCase) Execute(ctx context.Context, input ExportReimbursementsInput) (*ExportReimbursementsOutput, error) {
	if !input.Actor.HasRole(entity.RoleFinance, entity.RoleAdmin) {
		return nil, domainerror.NewInsufficientRoleError("only finance can export reimbursements")
	}

	window, err := valueobject.ParseMonth(input.Month)
	if err != nil {
		return nil, domainerror.New(domainerror.ErrCodeInvalidExportMonth, "month must use the YYYY-MM format", domainerror.ErrInvalidExportMonth)
	}

	summaries, err := uc.reportRepo.FindReimbursedInWindow(ctx, window)
	if err != nil {
		return nil, domainerror.New(domainerror.ErrCodeReportExport, "failed to load reimbursed reports", err)
	}

	reportIDs := make([]uuid.UUID, 0, len(summaries))
	ownerIDs := make([]uuid.UUID, 0, len(summaries))
	for _, s := range summaries {
		reportIDs = append(reportIDs, s.Report.ID)
		ownerIDs = append(ownerIDs, s.Report.UserID)
	}

	owners, err := uc.userRepo.FindByIDs(ctx, dedupeIDs(ownerIDs))
	if err != nil {
		return nil, domainerror.New(domainerror.ErrCodeReportExport, "failed to load report owners", err)
	}
	ownerByID := make(map[uuid.UUID]*entity.User, len(owners))
	for _, u := range owners {
		ownerByID[u.ID] = u
	}

	deductions, err := uc.deductionRepo.FindByReports(ctx, reportIDs)
	if err != nil {
		return nil, domainerror.New(domainerror.ErrCodeReportExport, "failed to load deductions", err)
	}
	deducted := make(map[uuid.UUID]decimal.Decimal)
	for _, d := range deductions {
		if d.ReportID == nil || d.Mode != entity.DeductionModeBank {
			continue
		}
		deducted[*d.ReportID] = deducted[*d.ReportID].Add(d.Amount)
	}

	rows := make([]*adapter.ReimbursementRow, 0, len(summaries))
	for _, s := range summaries {
		row := &adapter.ReimbursementRow{
			Label:              s.Report.Label,
			Title:              s.Report.Title,
			ExpenseCount:       s.ExpenseCount,
			TotalAmount:        s.TotalAmount,
			DeductionAmount:    deducted[s.Report.ID],
			FinanceDescription: s.Report.FinanceDescription,
		}
		if s.Report.ReimbursedAt != nil {
			row.ReimbursedAt = *s.Report.ReimbursedAt
		}
		if owner, ok := ownerByID[s.Report.UserID]; ok {
			row.OwnerName = owner.Name
			row.OwnerEmail = owner.Email
		}
		rows = append(rows, row)
	}

	content, err := uc.exporter.ExportReimbursements(ctx, input.Month, rows)
	if err != nil {
		return nil, domainerror.New(domainerror.ErrCodeReportExport, "failed to render export", err)
	}

	return &ExportReimbursementsOutput{
		Filename: fmt.Sprintf("reimbursements-%s.xlsx", input.Month),
		Content:  content,
		Rows:     len(rows),
	}, nil
}
