// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the state of an advance payment.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsValid reports whether the status is known.
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusPending || s == TransactionStatusCompleted || s == TransactionStatusCancelled
}

// Transaction is an advance payment credited to a user's wallet.
type Transaction struct {
	ID            uuid.UUID
	SenderID      uuid.UUID
	ReceiverID    uuid.UUID
	Amount        decimal.Decimal
	Status        TransactionStatus
	PaymentMethod string
	PaidBy        *Principal
	PaidOn        *time.Time
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTransaction creates a new advance payment in the given status.
func NewTransaction(senderID, receiverID uuid.UUID, amount decimal.Decimal, status TransactionStatus, paymentMethod, note string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:            uuid.New(),
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Amount:        amount,
		Status:        status,
		PaymentMethod: paymentMethod,
		Note:          note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Complete marks the advance as paid.
func (t *Transaction) Complete(paidBy Principal, paidOn time.Time) {
	on := paidOn.UTC()
	t.Status = TransactionStatusCompleted
	t.PaidBy = &paidBy
	t.PaidOn = &on
	t.UpdatedAt = time.Now().UTC()
}

// Cancel marks the advance as cancelled.
func (t *Transaction) Cancel() {
	t.Status = TransactionStatusCancelled
	t.UpdatedAt = time.Now().UTC()
}
