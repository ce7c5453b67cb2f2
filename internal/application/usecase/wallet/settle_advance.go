package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// SettleAdvanceInput moves a pending advance to completed or cancelled.
type SettleAdvanceInput struct {
	Actor         entity.Actor
	TransactionID uuid.UUID
	Status        entity.TransactionStatus
}

// SettleAdvanceOutput represents the settled advance.
type SettleAdvanceOutput struct {
	Transaction *entity.Transaction
}

// SettleAdvanceUseCase handles advance settlement logic.
type SettleAdvanceUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewSettleAdvanceUseCase creates a new SettleAdvanceUseCase instance.
func NewSettleAdvanceUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *SettleAdvanceUseCase {
	return &SettleAdvanceUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the settlement.
func (uc *SettleAdvanceUseCase) Execute(ctx context.Context, input SettleAdvanceInput) (*SettleAdvanceOutput, error) {
	if !input.Actor.HasRole(entity.RoleAdmin, entity.RoleFinance) {
		return nil, domainerror.NewInsufficientRoleError("only admin or finance can settle advances")
	}

	if input.Status != entity.TransactionStatusCompleted && input.Status != entity.TransactionStatusCancelled {
		return nil, domainerror.New(domainerror.ErrCodeInvalidTransactionStatus, "status must be completed or cancelled", domainerror.ErrInvalidTransactionStatus)
	}

	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeTransactionNotFound, "transaction not found", domainerror.ErrTransactionNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.Status != entity.TransactionStatusPending {
		return nil, settlementConflict(transaction.Status)
	}

	if input.Status == entity.TransactionStatusCompleted {
		transaction.Complete(input.Actor.Principal(), uc.clock.Now())
	} else {
		transaction.Cancel()
	}

	if err := uc.transactionRepo.UpdateStatus(ctx, transaction, entity.TransactionStatusPending); err != nil {
		if errors.Is(err, domainerror.ErrInvalidSettlement) {
			return nil, settlementConflict("")
		}
		return nil, domainerror.New(domainerror.ErrCodeWalletStorage, "failed to settle advance", err)
	}

	return &SettleAdvanceOutput{Transaction: transaction}, nil
}

func settlementConflict(current entity.TransactionStatus) error {
	message := "transaction is no longer pending"
	if current != "" {
		message = fmt.Sprintf("transaction is %s, only pending transactions can be settled", current)
	}
	return domainerror.New(domainerror.ErrCodeInvalidSettlement, message, domainerror.ErrInvalidSettlement)
}
