package mail

import (
	"context"
	"log/slog"
	"strings"
)

// Log is a Mail implementation that only writes messages to slog.
// It is meant for local development where no SMTP server is running.
type Log struct {
	defaultFrom string
}

// NewLog constructs a logging sender.
func NewLog(defaultFrom string) *Log {
	return &Log{defaultFrom: defaultFrom}
}

// Send logs the message instead of delivering it.
func (l *Log) Send(ctx context.Context, msg Message) error {
	if len(msg.Recipients()) == 0 {
		return ErrNoRecipients
	}

	from, err := resolveFrom(msg, l.defaultFrom)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "mail sent to log",
		"from", from,
		"to", strings.Join(msg.To, ","),
		"subject", msg.Subject,
		"headers", msg.Headers,
		"body", msg.TextBody,
	)

	return nil
}

// Close implements io.Closer.
func (l *Log) Close() error {
	return nil
}
