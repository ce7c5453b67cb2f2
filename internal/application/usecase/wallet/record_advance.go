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

// RecordAdvanceInput represents an advance payment to a user.
type RecordAdvanceInput struct {
	Actor         entity.Actor
	ReceiverID    uuid.UUID
	Amount        decimal.Decimal
	Status        entity.TransactionStatus // pending or completed
	PaymentMethod string
	Note          string
}

// RecordAdvanceOutput represents the recorded advance.
type RecordAdvanceOutput struct {
	Transaction *entity.Transaction
}

// RecordAdvanceUseCase records advance payments that credit a wallet.
type RecordAdvanceUseCase struct {
	transactionRepo adapter.TransactionRepository
	userRepo        adapter.UserRepository
	clock           adapter.Clock
}

// NewRecordAdvanceUseCase creates a new RecordAdvanceUseCase instance.
func NewRecordAdvanceUseCase(transactionRepo adapter.TransactionRepository, userRepo adapter.UserRepository, clock adapter.Clock) *RecordAdvanceUseCase {
	return &RecordAdvanceUseCase{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		clock:           clock,
	}
}

// Execute performs the recording.
func (uc *RecordAdvanceUseCase) Execute(ctx context.Context, input RecordAdvanceInput) (*RecordAdvanceOutput, error) {
	if !input.Actor.HasRole(entity.RoleAdmin, entity.RoleFinance) {
		return nil, domainerror.NewInsufficientRoleError("only admin or finance can record advances")
	}

	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entity.TransactionStatusPending
	}
	if status != entity.TransactionStatusPending && status != entity.TransactionStatusCompleted {
		return nil, domainerror.New(domainerror.ErrCodeInvalidTransactionStatus, "advance status must be pending or completed", domainerror.ErrInvalidTransactionStatus)
	}

	if err := requireUser(ctx, uc.userRepo, input.ReceiverID); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(input.Actor.ID, input.ReceiverID, input.Amount, entity.TransactionStatusPending, input.PaymentMethod, input.Note)
	if status == entity.TransactionStatusCompleted {
		transaction.Complete(input.Actor.Principal(), uc.clock.Now())
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, domainerror.New(domainerror.ErrCodeWalletStorage, "failed to record advance", err)
	}

	zap.L().Info("advance recorded",
		zap.String("transaction_id", transaction.ID.String()),
		zap.String("user_id", input.ReceiverID.String()),
		zap.String("status", string(transaction.Status)),
	)

	return &RecordAdvanceOutput{Transaction: transaction}, nil
}
