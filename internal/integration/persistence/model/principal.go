// Package model defines database models for persistence layer.
package model

import (
	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// principalColumns splits an optional principal into its discriminant and ID columns.
func principalColumns(p *entity.Principal) (*string, *uuid.UUID) {
	if p == nil || p.IsZero() {
		return nil, nil
	}
	kind := string(p.Kind)
	id := p.ID
	return &kind, &id
}

// principalFromColumns rebuilds an optional principal from its columns.
func principalFromColumns(kind *string, id *uuid.UUID) *entity.Principal {
	if kind == nil || id == nil {
		return nil
	}
	return &entity.Principal{Kind: entity.PrincipalKind(*kind), ID: *id}
}
