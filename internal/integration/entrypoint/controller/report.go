package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/application/usecase/report"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController handles report endpoints.
type ReportController struct {
	createUseCase *report.CreateReportUseCase
	getUseCase    *report.GetReportUseCase
	listUseCase   *report.ListReportsUseCase
	updateUseCase *report.UpdateReportUseCase
	exportUseCase *report.ExportReimbursementsUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	createUseCase *report.CreateReportUseCase,
	getUseCase *report.GetReportUseCase,
	listUseCase *report.ListReportsUseCase,
	updateUseCase *report.UpdateReportUseCase,
	exportUseCase *report.ExportReimbursementsUseCase,
) *ReportController {
	return &ReportController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		exportUseCase: exportUseCase,
	}
}

// Create handles POST /reports requests.
func (c *ReportController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	expenseIDs, err := dto.ParseIDs(req.ExpenseIDs)
	if err != nil {
		respondBadRequest(ctx, "Invalid expense ID format", err)
		return
	}

	input := report.CreateReportInput{
		UserID:      actor.ID,
		Title:       req.Title,
		Description: req.Description,
		ExpenseIDs:  expenseIDs,
	}
	if req.EventID != nil {
		eventID, err := uuid.Parse(*req.EventID)
		if err != nil {
			respondBadRequest(ctx, "Invalid event ID format", err)
			return
		}
		input.EventID = &eventID
	}
	if req.ReportDate != nil {
		reportDate, err := time.Parse(dto.DateLayout, *req.ReportDate)
		if err != nil {
			respondBadRequest(ctx, "Invalid report_date format. Use YYYY-MM-DD", err)
			return
		}
		input.ReportDate = &reportDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReportResponse(output.Report))
}

// Get handles GET /reports/:id requests. With is_event=true the id is an event
// and the caller's report for that event is returned.
func (c *ReportController) Get(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	isEvent := false
	if raw := ctx.Query("is_event"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(ctx, "Invalid is_event value", err)
			return
		}
		isEvent = parsed
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), report.GetReportInput{
		Actor:   actor,
		ID:      id,
		IsEvent: isEvent,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportDetailResponse(output.Report, output.Expenses, output.TotalAmount))
}

// List handles GET /reports requests.
func (c *ReportController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	input := report.ListReportsInput{
		UserID: actor.ID,
		Page:   queryPage(ctx),
		Filter: adapter.ReportFilterType(ctx.Query("filter")),
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

// Update handles PATCH /reports/:id requests.
func (c *ReportController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	expenseIDs, err := dto.ParseIDs(req.ExpenseIDs)
	if err != nil {
		respondBadRequest(ctx, "Invalid expense ID format", err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), report.UpdateReportInput{
		UserID:      actor.ID,
		ReportID:    id,
		Title:       req.Title,
		Description: req.Description,
		ExpenseIDs:  expenseIDs,
		Submit:      req.Submit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateReportResponse{
		Report:  dto.ToReportResponse(output.Report),
		Added:   idList(output.Added),
		Removed: idList(output.Removed),
	})
}

// Export handles GET /finance/reimbursements/export requests.
func (c *ReportController) Export(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), report.ExportReimbursementsInput{
		Actor: actor,
		Month: ctx.Query("month"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, xlsxContentType, output.Content)
}

func idList(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
