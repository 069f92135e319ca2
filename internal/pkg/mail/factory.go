package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverSMTP selects the net/smtp backend.
	DriverSMTP = "smtp"
	// DriverGoMail selects the go-mail SMTP backend.
	DriverGoMail = "gomail"
	// DriverResend selects the Resend API backend.
	DriverResend = "resend"
	// DriverSES selects the Amazon SES v2 backend.
	DriverSES = "ses"
	// DriverLog selects the slog-only backend.
	DriverLog = "log"
)

// ErrUnknownDriver indicates an unsupported mail driver.
var ErrUnknownDriver = errors.New("mail: unknown driver")

// FactoryOptions groups configuration for mail drivers.
type FactoryOptions struct {
	// SMTP configures the net/smtp backend.
	SMTP SMTPConfig
	// GoMail configures the go-mail backend.
	GoMail GoMailConfig
	// Resend configures the Resend backend.
	Resend ResendConfig
	// SES configures the SES backend.
	SES SESConfig
	// From is the default sender for the log backend.
	From string
}

// NewFromDriver constructs a Mail implementation by driver name.
// An empty driver selects smtp.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSMTP:
		return NewSMTP(opts.SMTP)
	case DriverGoMail:
		return NewGoMail(opts.GoMail)
	case DriverResend:
		return NewResend(opts.Resend)
	case DriverSES:
		return NewSES(ctx, opts.SES)
	case DriverLog:
		return NewLog(opts.From), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
