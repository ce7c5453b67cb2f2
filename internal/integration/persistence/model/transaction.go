package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SenderID      uuid.UUID       `gorm:"type:uuid;not null"`
	ReceiverID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod string          `gorm:"type:varchar(50)"`
	PaidByKind    *string         `gorm:"type:varchar(10)"`
	PaidByID      *uuid.UUID      `gorm:"type:uuid"`
	PaidOn        *time.Time      `gorm:"index"`
	Note          string          `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		SenderID:      m.SenderID,
		ReceiverID:    m.ReceiverID,
		Amount:        m.Amount,
		Status:        entity.TransactionStatus(m.Status),
		PaymentMethod: m.PaymentMethod,
		PaidBy:        principalFromColumns(m.PaidByKind, m.PaidByID),
		PaidOn:        m.PaidOn,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	paidByKind, paidByID := principalColumns(transaction.PaidBy)
	return &TransactionModel{
		ID:            transaction.ID,
		SenderID:      transaction.SenderID,
		ReceiverID:    transaction.ReceiverID,
		Amount:        transaction.Amount,
		Status:        string(transaction.Status),
		PaymentMethod: transaction.PaymentMethod,
		PaidByKind:    paidByKind,
		PaidByID:      paidByID,
		PaidOn:        transaction.PaidOn,
		Note:          transaction.Note,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
	}
}
