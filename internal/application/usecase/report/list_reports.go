package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// ListReportsInput represents the input for listing a user's reports.
type ListReportsInput struct {
	UserID uuid.UUID
	Page   int
	Filter adapter.ReportFilterType // Defaults to all
	Status *entity.ReportStatus
}

// ListReportsOutput represents a page of report summaries.
type ListReportsOutput struct {
	Result *entity.ReportListResult
}

// ListReportsUseCase handles report listing logic.
type ListReportsUseCase struct {
	reportRepo adapter.ReportRepository
}

// NewListReportsUseCase creates a new ListReportsUseCase instance.
func NewListReportsUseCase(reportRepo adapter.ReportRepository) *ListReportsUseCase {
	return &ListReportsUseCase{
		reportRepo: reportRepo,
	}
}

// Execute performs the report listing.
func (uc *ListReportsUseCase) Execute(ctx context.Context, input ListReportsInput) (*ListReportsOutput, error) {
	filter, err := reportFilter(input.Filter, input.Status)
	if err != nil {
		return nil, err
	}
	filter.UserIDs = []uuid.UUID{input.UserID}

	result, err := uc.reportRepo.FindByFilter(ctx, filter, adapter.NewPagination(input.Page))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return &ListReportsOutput{Result: result}, nil
}

func reportFilter(filterType adapter.ReportFilterType, status *entity.ReportStatus) (adapter.ReportFilter, error) {
	if filterType == "" {
		filterType = adapter.ReportFilterAll
	}
	if !filterType.IsValid() {
		return adapter.ReportFilter{}, domainerror.New(
			domainerror.ErrCodeInvalidReportFilter,
			"filter must be one of all, event or general",
			domainerror.ErrInvalidReportFilter,
		)
	}
	if status != nil && !status.IsValid() {
		return adapter.ReportFilter{}, domainerror.New(
			domainerror.ErrCodeInvalidReportFilter,
			fmt.Sprintf("unknown report status %q", *status),
			domainerror.ErrInvalidReportFilter,
		)
	}
	return adapter.ReportFilter{Type: filterType, Status: status}, nil
}
