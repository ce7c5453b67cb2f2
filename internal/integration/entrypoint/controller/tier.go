package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reimburse-desk/backend/internal/application/usecase/tier"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
)

// TierController handles tier endpoints.
type TierController struct {
	getUseCase    *tier.GetTierUseCase
	upsertUseCase *tier.UpsertTierUseCase
}

// NewTierController creates a new tier controller instance.
func NewTierController(getUseCase *tier.GetTierUseCase, upsertUseCase *tier.UpsertTierUseCase) *TierController {
	return &TierController{
		getUseCase:    getUseCase,
		upsertUseCase: upsertUseCase,
	}
}

// Get handles GET /tiers/:id requests.
func (c *TierController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), tier.GetTierInput{ID: id})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTierResponse(output.Tier))
}

// Upsert handles PUT /tiers/:id requests.
func (c *TierController) Upsert(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpsertTierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), tier.UpsertTierInput{
		Actor:       actor,
		ID:          id,
		Title:       req.Title,
		Categories:  dto.ToTierCategories(req.Categories),
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTierResponse(output.Tier))
}
