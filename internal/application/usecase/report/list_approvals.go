package report

import (
	"context"
	"fmt"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// ListApprovalsInput represents the input for listing reports awaiting a reviewer.
type ListApprovalsInput struct {
	Actor  entity.Actor
	Page   int
	Status *entity.ReportStatus
}

// ListApprovalsUseCase lists the submitted reports of every user the caller approves for.
type ListApprovalsUseCase struct {
	reportRepo adapter.ReportRepository
	userRepo   adapter.UserRepository
}

// NewListApprovalsUseCase creates a new ListApprovalsUseCase instance.
func NewListApprovalsUseCase(reportRepo adapter.ReportRepository, userRepo adapter.UserRepository) *ListApprovalsUseCase {
	return &ListApprovalsUseCase{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

// Execute performs the approval listing.
func (uc *ListApprovalsUseCase) Execute(ctx context.Context, input ListApprovalsInput) (*ListReportsOutput, error) {
	if !input.Actor.HasRole(entity.RoleApprover, entity.RoleAdmin) {
		return nil, domainerror.NewInsufficientRoleError("only approvers can list approvals")
	}

	filter, err := reportFilter(adapter.ReportFilterAll, input.Status)
	if err != nil {
		return nil, err
	}

	pagination := adapter.NewPagination(input.Page)

	userIDs, err := uc.userRepo.FindIDsByApprover(ctx, input.Actor.Principal())
	if err != nil {
		return nil, fmt.Errorf("failed to find approvees: %w", err)
	}
	if len(userIDs) == 0 {
		return &ListReportsOutput{Result: &entity.ReportListResult{
			Reports: []*entity.ReportSummary{},
			Page:    pagination.Page,
			Limit:   pagination.Limit,
		}}, nil
	}

	filter.UserIDs = userIDs
	filter.SubmittedOnly = true

	result, err := uc.reportRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}

	return &ListReportsOutput{Result: result}, nil
}
