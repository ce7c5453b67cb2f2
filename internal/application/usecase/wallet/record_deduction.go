package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// RecordDeductionInput represents a wallet debit.
type RecordDeductionInput struct {
	Actor       entity.Actor
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
}

// RecordDeductionOutput represents the recorded deduction.
type RecordDeductionOutput struct {
	Deduction *entity.Deduction
}

// RecordDeductionUseCase records wallet-mode deductions.
type RecordDeductionUseCase struct {
	deductionRepo adapter.DeductionRepository
	userRepo      adapter.UserRepository
	clock         adapter.Clock
}

// NewRecordDeductionUseCase creates a new RecordDeductionUseCase instance.
func NewRecordDeductionUseCase(deductionRepo adapter.DeductionRepository, userRepo adapter.UserRepository, clock adapter.Clock) *RecordDeductionUseCase {
	return &RecordDeductionUseCase{
		deductionRepo: deductionRepo,
		userRepo:      userRepo,
		clock:         clock,
	}
}

// Execute performs the recording.
func (uc *RecordDeductionUseCase) Execute(ctx context.Context, input RecordDeductionInput) (*RecordDeductionOutput, error) {
	if !input.Actor.HasRole(entity.RoleAdmin, entity.RoleFinance) {
		return nil, domainerror.NewInsufficientRoleError("only admin or finance can record deductions")
	}

	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}

	if err := requireUser(ctx, uc.userRepo, input.UserID); err != nil {
		return nil, err
	}

	deduction := entity.NewDeduction(input.UserID, input.Amount, input.Actor.Principal(), nil, entity.DeductionModeWallet, input.Description, uc.clock.Now())
	if err := uc.deductionRepo.Create(ctx, deduction); err != nil {
		return nil, domainerror.New(domainerror.ErrCodeWalletStorage, "failed to record deduction", err)
	}

	zap.L().Info("wallet deduction recorded",
		zap.String("deduction_id", deduction.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("amount", input.Amount.StringFixed(2)),
	)

	return &RecordDeductionOutput{Deduction: deduction}, nil
}
