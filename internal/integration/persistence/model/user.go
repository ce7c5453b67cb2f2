package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'staff'"`
	TierID       *uuid.UUID `gorm:"type:uuid;index"`
	ApproverKind *string    `gorm:"type:varchar(10);index:idx_users_approver"`
	ApproverID   *uuid.UUID `gorm:"type:uuid;index:idx_users_approver"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      entity.Role(m.Role),
		TierID:    m.TierID,
		Approver:  principalFromColumns(m.ApproverKind, m.ApproverID),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	approverKind, approverID := principalColumns(user.Approver)
	return &UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		TierID:       user.TierID,
		ApproverKind: approverKind,
		ApproverID:   approverID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// AdminModel represents the admins table in the database.
type AdminModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the AdminModel.
func (AdminModel) TableName() string {
	return "admins"
}

// ToEntity converts an AdminModel to a domain Admin entity.
func (m *AdminModel) ToEntity() *entity.Admin {
	return &entity.Admin{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// AdminFromEntity creates an AdminModel from a domain Admin entity.
func AdminFromEntity(admin *entity.Admin) *AdminModel {
	return &AdminModel{
		ID:        admin.ID,
		Email:     admin.Email,
		Name:      admin.Name,
		CreatedAt: admin.CreatedAt,
	}
}
