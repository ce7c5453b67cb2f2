package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/application/usecase/expense"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	createUseCase *expense.CreateExpenseUseCase
	listUseCase   *expense.ListExpensesUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	createUseCase *expense.CreateExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
) *ExpenseController {
	return &ExpenseController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
	}
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	expenseDate, err := time.Parse(dto.DateLayout, req.ExpenseDate)
	if err != nil {
		respondBadRequest(ctx, "Invalid expense_date format. Use YYYY-MM-DD", err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		UserID:          actor.ID,
		Title:           req.Title,
		Category:        req.Category,
		Amount:          req.Amount,
		ExpenseDate:     expenseDate,
		Description:     req.Description,
		ReceiptImage:    req.ReceiptImage,
		ReceiptMIMEType: req.ReceiptMIMEType,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateExpenseResponse{
		Expense:        dto.ToExpenseResponse(output.Expense),
		AnalysisQueued: output.AnalysisQueued,
	})
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	input := expense.ListExpensesInput{
		UserID: actor.ID,
		Page:   queryPage(ctx),
		Filter: adapter.ExpenseFilterType(ctx.Query("filter")),
	}
	if status := optionalQuery(ctx, "status"); status != nil {
		s := entity.ExpenseStatus(*status)
		input.Status = &s
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Result))
}
