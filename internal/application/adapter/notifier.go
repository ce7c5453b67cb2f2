// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// Notifier informs principals about report status changes.
// Delivery is fire-and-forget: failures are logged by the implementation and
// never reach the caller.
type Notifier interface {
	// Notify records and delivers a status change of the report to the recipient.
	Notify(ctx context.Context, recipient entity.Principal, report *entity.Report, subject string)
}

// Contact is how a principal can be reached.
type Contact struct {
	Email string
	Name  string
}

// PrincipalDirectory resolves principals of any kind to their contact details.
type PrincipalDirectory interface {
	// Resolve returns the contact details of the principal.
	Resolve(ctx context.Context, principal entity.Principal) (*Contact, error)
}
