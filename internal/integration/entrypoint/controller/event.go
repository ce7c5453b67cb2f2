package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/application/usecase/event"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
)

// EventController handles event endpoints.
type EventController struct {
	createUseCase *event.CreateEventUseCase
	listUseCase   *event.ListEventsUseCase
}

// NewEventController creates a new event controller instance.
func NewEventController(createUseCase *event.CreateEventUseCase, listUseCase *event.ListEventsUseCase) *EventController {
	return &EventController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
	}
}

// Create handles POST /events requests.
func (c *EventController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	staff, err := dto.ParseIDs(req.Staff)
	if err != nil {
		respondBadRequest(ctx, "Invalid staff ID format", err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), event.CreateEventInput{
		Actor:       actor,
		Title:       req.Title,
		Description: req.Description,
		Staff:       staff,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToEventResponse(output.Event))
}

// List handles GET /events requests.
func (c *EventController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	input := event.ListEventsInput{
		Actor:  actor,
		Page:   queryPage(ctx),
		Filter: adapter.EventFilterType(ctx.Query("filter")),
	}
	if status := optionalQuery(ctx, "status"); status != nil {
		s := entity.EventStatus(*status)
		input.Status = &s
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEventListResponse(output.Result))
}
