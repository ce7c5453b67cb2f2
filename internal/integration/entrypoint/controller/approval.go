package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reimburse-desk/backend/internal/application/usecase/approval"
	"github.com/reimburse-desk/backend/internal/application/usecase/report"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
)

// ApprovalController handles approval queue, decision and reimbursement endpoints.
type ApprovalController struct {
	listUseCase      *report.ListApprovalsUseCase
	decideUseCase    *approval.DecideApprovalUseCase
	reimburseUseCase *approval.ReimburseUseCase
}

// NewApprovalController creates a new approval controller instance.
func NewApprovalController(
	listUseCase *report.ListApprovalsUseCase,
	decideUseCase *approval.DecideApprovalUseCase,
	reimburseUseCase *approval.ReimburseUseCase,
) *ApprovalController {
	return &ApprovalController{
		listUseCase:      listUseCase,
		decideUseCase:    decideUseCase,
		reimburseUseCase: reimburseUseCase,
	}
}

// List handles GET /approvals requests.
func (c *ApprovalController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	input := report.ListApprovalsInput{
		Actor: actor,
		Page:  queryPage(ctx),
	}
	if status := optionalQuery(ctx, "status"); status != nil {
		s := entity.ReportStatus(*status)
		input.Status = &s
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportListResponse(output.Result))
}

// Decide handles POST /approvals/:id/decision requests.
func (c *ApprovalController) Decide(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	expenseIDs, err := dto.ParseIDs(req.ExpenseIDs)
	if err != nil {
		respondBadRequest(ctx, "Invalid expense ID format", err)
		return
	}

	output, err := c.decideUseCase.Execute(ctx.Request.Context(), approval.DecideApprovalInput{
		Actor:      actor,
		ReportID:   id,
		Status:     entity.ReportStatus(req.Status),
		ExpenseIDs: expenseIDs,
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDecisionResponse(output))
}

// Reimburse handles POST /reports/:id/reimburse requests.
func (c *ApprovalController) Reimburse(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.ReimburseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.reimburseUseCase.Execute(ctx.Request.Context(), approval.ReimburseInput{
		Actor:              actor,
		ReportID:           id,
		FinanceDescription: req.FinanceDescription,
		DeductionAmount:    req.DeductionAmount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReimburseResponse(output))
}
