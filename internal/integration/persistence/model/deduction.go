package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// DeductionModel represents the deductions table in the database.
type DeductionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DeductedByKind string          `gorm:"type:varchar(10);not null"`
	DeductedByID   uuid.UUID       `gorm:"type:uuid;not null"`
	ReportID       *uuid.UUID      `gorm:"type:uuid;index"`
	Mode           string          `gorm:"type:varchar(10);not null;index"`
	Active         bool            `gorm:"not null"`
	Description    string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the DeductionModel.
func (DeductionModel) TableName() string {
	return "deductions"
}

// ToEntity converts a DeductionModel to a domain Deduction entity.
func (m *DeductionModel) ToEntity() *entity.Deduction {
	return &entity.Deduction{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		DeductedBy:  entity.Principal{Kind: entity.PrincipalKind(m.DeductedByKind), ID: m.DeductedByID},
		ReportID:    m.ReportID,
		Mode:        entity.DeductionMode(m.Mode),
		Active:      m.Active,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// DeductionFromEntity creates a DeductionModel from a domain Deduction entity.
func DeductionFromEntity(deduction *entity.Deduction) *DeductionModel {
	return &DeductionModel{
		ID:             deduction.ID,
		UserID:         deduction.UserID,
		Amount:         deduction.Amount,
		DeductedByKind: string(deduction.DeductedBy.Kind),
		DeductedByID:   deduction.DeductedBy.ID,
		ReportID:       deduction.ReportID,
		Mode:           string(deduction.Mode),
		Active:         deduction.Active,
		Description:    deduction.Description,
		CreatedAt:      deduction.CreatedAt,
	}
}
