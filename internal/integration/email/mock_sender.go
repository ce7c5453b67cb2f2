package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// MockEmailSender records emails instead of sending them. It is used when no
// Resend API key is configured and by tests.
type MockEmailSender struct {
	mu          sync.Mutex
	sent        []adapter.SendEmailInput
	failErr     error
	isPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send records the email or fails as configured.
func (m *MockEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		if m.isPermanent {
			return nil, domainerror.New(domainerror.ErrCodePermanentEmailFailure, "mock permanent failure",
				fmt.Errorf("%w: %v", domainerror.ErrPermanentEmailFailure, m.failErr))
		}
		return nil, domainerror.New(domainerror.ErrCodeTemporaryEmailFailure, "mock temporary failure",
			fmt.Errorf("%w: %v", domainerror.ErrTemporaryEmailFailure, m.failErr))
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.sent)),
	}, nil
}

// Sent returns a copy of the recorded emails.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), m.sent...)
}

// SetFailure configures the mock to fail with the given error.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.isPermanent = permanent
}

// Reset clears recorded emails and failure configuration.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failErr = nil
	m.isPermanent = false
}

var _ adapter.EmailSender = (*MockEmailSender)(nil)
