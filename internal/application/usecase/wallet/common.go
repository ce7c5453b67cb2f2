package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.New(domainerror.ErrCodeInvalidWalletAmount, "amount must be greater than zero", domainerror.ErrInvalidAmount)
	}
	return nil
}

func requireUser(ctx context.Context, repo adapter.UserRepository, id uuid.UUID) error {
	if _, err := repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return domainerror.New(domainerror.ErrCodeWalletUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
