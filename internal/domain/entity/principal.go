// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
)

// PrincipalKind discriminates the account table a principal lives in.
type PrincipalKind string

const (
	PrincipalKindUser  PrincipalKind = "user"
	PrincipalKindAdmin PrincipalKind = "admin"
)

// IsValid reports whether the kind is one of the known principal kinds.
func (k PrincipalKind) IsValid() bool {
	return k == PrincipalKindUser || k == PrincipalKindAdmin
}

// Principal references an approver, reimburser or notification recipient.
// Staff accounts and administrator accounts are stored separately, so a bare
// ID is ambiguous without its kind.
type Principal struct {
	Kind PrincipalKind
	ID   uuid.UUID
}

// UserPrincipal returns a principal pointing at a staff account.
func UserPrincipal(id uuid.UUID) Principal {
	return Principal{Kind: PrincipalKindUser, ID: id}
}

// AdminPrincipal returns a principal pointing at an administrator account.
func AdminPrincipal(id uuid.UUID) Principal {
	return Principal{Kind: PrincipalKindAdmin, ID: id}
}

// IsZero reports whether the principal is unset.
func (p Principal) IsZero() bool {
	return p.ID == uuid.Nil
}

// Equal reports whether both principals reference the same account.
func (p Principal) Equal(other Principal) bool {
	return p.Kind == other.Kind && p.ID == other.ID
}

// String renders the principal as kind:id.
func (p Principal) String() string {
	return string(p.Kind) + ":" + p.ID.String()
}
