// Package approval contains the approval and reimbursement use cases.
package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

func findReport(ctx context.Context, repo adapter.ReportRepository, id uuid.UUID) (*entity.Report, error) {
	report, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrReportNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeReportNotFound, "report not found", domainerror.ErrReportNotFound)
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// mapWriteError converts storage conflicts raised inside a decision write.
func mapWriteError(err error) error {
	if errors.Is(err, domainerror.ErrConcurrentUpdate) {
		return domainerror.New(
			domainerror.ErrCodeConcurrentUpdate,
			"report was decided by another request, reload and retry",
			domainerror.ErrConcurrentUpdate,
		)
	}
	return domainerror.New(domainerror.ErrCodeApprovalStorage, "failed to save report", err)
}
