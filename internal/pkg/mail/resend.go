package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ErrAPIKeyRequired is returned when an API based driver has no key.
var ErrAPIKeyRequired = errors.New("mail: api key is required")

// ResendConfig configures the Resend implementation.
type ResendConfig struct {
	// APIKey is the Resend API key.
	APIKey string
	// From is the default sender when Message.From is empty.
	From string
}

// Resend is a Mail implementation backed by the Resend HTTP API.
type Resend struct {
	client      *resend.Client
	defaultFrom string
}

// NewResend constructs a Resend sender.
func NewResend(cfg ResendConfig) (*Resend, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	return &Resend{
		client:      resend.NewClient(cfg.APIKey),
		defaultFrom: cfg.From,
	}, nil
}

// Send delivers a message through the Resend API.
func (r *Resend) Send(ctx context.Context, msg Message) error {
	if len(msg.Recipients()) == 0 {
		return ErrNoRecipients
	}

	from, err := resolveFrom(msg, r.defaultFrom)
	if err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Cc:      msg.Cc,
		Bcc:     msg.Bcc,
		Subject: msg.Subject,
		Text:    msg.TextBody,
		Html:    msg.HTMLBody,
		Headers: msg.Headers,
	}

	if _, err := r.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("mail: resend send: %w", err)
	}

	return nil
}

// Close implements io.Closer.
func (r *Resend) Close() error {
	return nil
}
