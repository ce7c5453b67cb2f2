// Package email delivers queued notification emails via Resend.
package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// permanentFailureMarkers identify provider errors that will not succeed on retry:
// rejected credentials and malformed requests. Rate limits and 5xx are retried.
var permanentFailureMarkers = []string{
	"401",
	"403",
	"422",
	"unauthorized",
	"forbidden",
	"validation",
	"invalid",
	"bad request",
}

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a new Resend client sending as "fromName <fromEmail>".
// A non-empty baseURL replaces the public Resend endpoint.
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendClient{
		client: client,
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = fmt.Sprintf("%s <%s>", input.Name, input.To)
	}

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{
		ProviderID: resp.Id,
	}, nil
}

// classifySendError wraps a provider error as a permanent or temporary failure.
func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentFailureMarkers {
		if strings.Contains(msg, marker) {
			return domainerror.New(domainerror.ErrCodePermanentEmailFailure, "permanent email failure",
				fmt.Errorf("%w: %v", domainerror.ErrPermanentEmailFailure, err))
		}
	}
	return domainerror.New(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure",
		fmt.Errorf("%w: %v", domainerror.ErrTemporaryEmailFailure, err))
}

var _ adapter.EmailSender = (*ResendClient)(nil)
