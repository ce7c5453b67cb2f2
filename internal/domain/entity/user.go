// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role carried by an authenticated caller.
type Role string

const (
	RoleStaff    Role = "staff"
	RoleApprover Role = "approver"
	RoleAdmin    Role = "admin"
	RoleFinance  Role = "finance"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	switch r {
	case RoleStaff, RoleApprover, RoleAdmin, RoleFinance:
		return true
	}
	return false
}

// User represents a staff account. Accounts are provisioned by the identity
// collaborator; this service only reads them.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      Role
	TierID    *uuid.UUID
	Approver  *Principal // Who reviews this user's reports
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new User entity.
func NewUser(email, name string, role Role, tierID *uuid.UUID, approver *Principal) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Role:      role,
		TierID:    tierID,
		Approver:  approver,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Admin represents an administrator account.
type Admin struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
}

// NewAdmin creates a new Admin entity.
func NewAdmin(email, name string) *Admin {
	return &Admin{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Actor is the already-authenticated caller of a use case.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Principal returns the principal this actor acts as. Administrators live in
// their own account table, everyone else is a staff account.
func (a Actor) Principal() Principal {
	if a.Role == RoleAdmin {
		return AdminPrincipal(a.ID)
	}
	return UserPrincipal(a.ID)
}

// HasRole reports whether the actor holds any of the given roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
