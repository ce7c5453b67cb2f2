package adapters

import (
	"context"
	"fmt"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// principalDirectory resolves principals through the account repositories.
type principalDirectory struct {
	resolvers map[entity.PrincipalKind]func(ctx context.Context, p entity.Principal) (*adapter.Contact, error)
}

// NewPrincipalDirectory creates a directory that looks up users and admins.
func NewPrincipalDirectory(users adapter.UserRepository, admins adapter.AdminRepository) adapter.PrincipalDirectory {
	return &principalDirectory{
		resolvers: map[entity.PrincipalKind]func(ctx context.Context, p entity.Principal) (*adapter.Contact, error){
			entity.PrincipalKindUser: func(ctx context.Context, p entity.Principal) (*adapter.Contact, error) {
				user, err := users.FindByID(ctx, p.ID)
				if err != nil {
					return nil, err
				}
				return &adapter.Contact{Email: user.Email, Name: user.Name}, nil
			},
			entity.PrincipalKindAdmin: func(ctx context.Context, p entity.Principal) (*adapter.Contact, error) {
				admin, err := admins.FindByID(ctx, p.ID)
				if err != nil {
					return nil, err
				}
				return &adapter.Contact{Email: admin.Email, Name: admin.Name}, nil
			},
		},
	}
}

// Resolve returns the contact details of the principal.
func (d *principalDirectory) Resolve(ctx context.Context, principal entity.Principal) (*adapter.Contact, error) {
	resolve, ok := d.resolvers[principal.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown principal kind %q", principal.Kind)
	}
	return resolve(ctx, principal)
}
