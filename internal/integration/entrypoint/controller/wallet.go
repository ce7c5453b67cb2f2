package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/usecase/wallet"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
)

// WalletController handles wallet, advance and deduction endpoints.
type WalletController struct {
	getUseCase       *wallet.GetWalletUseCase
	usedUseCase      *wallet.GetWalletUsedUseCase
	advanceUseCase   *wallet.RecordAdvanceUseCase
	settleUseCase    *wallet.SettleAdvanceUseCase
	deductionUseCase *wallet.RecordDeductionUseCase
}

// NewWalletController creates a new wallet controller instance.
func NewWalletController(
	getUseCase *wallet.GetWalletUseCase,
	usedUseCase *wallet.GetWalletUsedUseCase,
	advanceUseCase *wallet.RecordAdvanceUseCase,
	settleUseCase *wallet.SettleAdvanceUseCase,
	deductionUseCase *wallet.RecordDeductionUseCase,
) *WalletController {
	return &WalletController{
		getUseCase:       getUseCase,
		usedUseCase:      usedUseCase,
		advanceUseCase:   advanceUseCase,
		settleUseCase:    settleUseCase,
		deductionUseCase: deductionUseCase,
	}
}

// Get handles GET /wallet requests.
func (c *WalletController) Get(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), wallet.GetWalletInput{UserID: actor.ID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletResponse(output))
}

// Used handles GET /wallet/used requests.
func (c *WalletController) Used(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	output, err := c.usedUseCase.Execute(ctx.Request.Context(), wallet.GetWalletUsedInput{UserID: actor.ID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletUsedResponse(output))
}

// RecordAdvance handles POST /wallet/advances requests.
func (c *WalletController) RecordAdvance(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.RecordAdvanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.advanceUseCase.Execute(ctx.Request.Context(), wallet.RecordAdvanceInput{
		Actor:         actor,
		ReceiverID:    uuid.MustParse(req.ReceiverID),
		Amount:        req.Amount,
		Status:        entity.TransactionStatus(req.Status),
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// SettleAdvance handles PATCH /wallet/advances/:id requests.
func (c *WalletController) SettleAdvance(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.SettleAdvanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.settleUseCase.Execute(ctx.Request.Context(), wallet.SettleAdvanceInput{
		Actor:         actor,
		TransactionID: id,
		Status:        entity.TransactionStatus(req.Status),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// RecordDeduction handles POST /wallet/deductions requests.
func (c *WalletController) RecordDeduction(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.RecordDeductionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.deductionUseCase.Execute(ctx.Request.Context(), wallet.RecordDeductionInput{
		Actor:       actor,
		UserID:      uuid.MustParse(req.UserID),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToDeductionResponse(output.Deduction))
}
