package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
	"github.com/reimburse-desk/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&txModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return txModel.ToEntity(), nil
}

// UpdateStatus saves a status change only if the stored status still equals from.
func (r *transactionRepository) UpdateStatus(ctx context.Context, transaction *entity.Transaction, from entity.TransactionStatus) error {
	paidByKind, paidByID := principalValues(transaction.PaidBy)

	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ? AND status = ?", transaction.ID, string(from)).
		Updates(map[string]interface{}{
			"status":       string(transaction.Status),
			"paid_by_kind": paidByKind,
			"paid_by_id":   paidByID,
			"paid_on":      transaction.PaidOn,
			"updated_at":   transaction.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvalidSettlement
	}
	return nil
}

// FindCompletedForReceiverInWindow retrieves completed advances to a user paid inside the window.
func (r *transactionRepository) FindCompletedForReceiverInWindow(ctx context.Context, receiverID uuid.UUID, window valueobject.MonthWindow) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", receiverID, string(entity.TransactionStatusCompleted)).
		Where("paid_on >= ? AND paid_on < ?", window.Start, window.End).
		Order("paid_on DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions, nil
}
