package mail

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/samber/lo"
)

var (
	// ErrHostPortRequired is returned when Host/Port are missing.
	ErrHostPortRequired = errors.New("mail: host and port are required")
	// ErrNoRecipients is returned when To/Cc/Bcc are all empty.
	ErrNoRecipients = errors.New("mail: no recipients provided")
	// ErrNoSender is returned when both Message.From and the configured default From are empty.
	ErrNoSender = errors.New("mail: no sender provided")
)

// Message represents an email payload.
//
// Fields are intentionally provider-agnostic so they can be sent using SMTP or
// other delivery mechanisms.
type Message struct {
	// From is an optional explicit sender; fallback depends on implementation.
	From string
	// To lists required recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body; preferred when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
	// Headers are extra message headers (e.g. X-Sender-Id).
	Headers map[string]string
}

// Mail abstracts an email provider (SMTP, third-party API, etc).
type Mail interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}

// Recipients returns the envelope recipients (To, Cc and Bcc) without blanks
// or duplicates, in first-seen order.
func (m Message) Recipients() []string {
	all := slices.Concat(m.To, m.Cc, m.Bcc)
	return lo.Uniq(lo.Compact(all))
}

// HeaderKeys returns the extra header names sorted, so rendering is stable.
func (m Message) HeaderKeys() []string {
	keys := lo.Keys(m.Headers)
	slices.Sort(keys)
	return keys
}

func resolveFrom(msg Message, defaultFrom string) (string, error) {
	if msg.From != "" {
		return msg.From, nil
	}
	if defaultFrom != "" {
		return defaultFrom, nil
	}
	return "", ErrNoSender
}
