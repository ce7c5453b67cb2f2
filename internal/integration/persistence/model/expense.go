package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Category    string          `gorm:"type:varchar(100);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'drafted';index"`
	ExpenseDate time.Time       `gorm:"not null"`
	Description string          `gorm:"type:text"`
	AIScores    *string         `gorm:"type:text"` // JSON encoded receipt scores
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	var scores *entity.ReceiptScores
	if m.AIScores != nil && *m.AIScores != "" {
		var s entity.ReceiptScores
		if err := json.Unmarshal([]byte(*m.AIScores), &s); err != nil {
			zap.L().Warn("failed to unmarshal receipt scores", zap.String("expense_id", m.ID.String()), zap.Error(err))
		} else {
			scores = &s
		}
	}

	return &entity.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Category:    m.Category,
		Amount:      m.Amount,
		Status:      entity.ExpenseStatus(m.Status),
		ExpenseDate: m.ExpenseDate,
		Description: m.Description,
		AIScores:    scores,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          expense.ID,
		UserID:      expense.UserID,
		Title:       expense.Title,
		Category:    expense.Category,
		Amount:      expense.Amount,
		Status:      string(expense.Status),
		ExpenseDate: expense.ExpenseDate,
		Description: expense.Description,
		AIScores:    EncodeReceiptScores(expense.AIScores),
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// EncodeReceiptScores serializes receipt scores for the ai_scores column.
func EncodeReceiptScores(scores *entity.ReceiptScores) *string {
	if scores == nil {
		return nil
	}
	data, err := json.Marshal(scores)
	if err != nil {
		zap.L().Error("failed to marshal receipt scores", zap.Error(err))
		return nil
	}
	encoded := string(data)
	return &encoded
}
