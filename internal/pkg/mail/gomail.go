package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// TLS policy names accepted by GoMailConfig.TLSPolicy.
const (
	TLSPolicyMandatory     = "mandatory"
	TLSPolicyOpportunistic = "opportunistic"
	TLSPolicyNone          = "none"
)

// GoMailConfig configures the go-mail implementation.
type GoMailConfig struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port.
	Port int
	// Username is the SMTP authentication username; auth is skipped when empty.
	Username string
	// Password is the SMTP authentication password.
	Password string
	// From is the default sender when Message.From is empty.
	From string
	// TLSPolicy is one of mandatory, opportunistic or none (default opportunistic).
	TLSPolicy string
	// Timeout bounds dial and command round trips; zero keeps the library default.
	Timeout time.Duration
}

// GoMail is a Mail implementation backed by github.com/wneessen/go-mail.
type GoMail struct {
	client      *gomail.Client
	defaultFrom string
}

// NewGoMail constructs a go-mail backed sender.
func NewGoMail(cfg GoMailConfig) (*GoMail, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrHostPortRequired
	}

	opts := []gomail.Option{
		gomail.WithTLSPortPolicy(tlsPolicy(cfg.TLSPolicy)),
		gomail.WithPort(cfg.Port),
	}
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	if cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(cfg.Timeout))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: gomail new client: %w", err)
	}

	return &GoMail{client: client, defaultFrom: cfg.From}, nil
}

// Send delivers a message through a fresh SMTP session.
func (g *GoMail) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.Recipients()) == 0 {
		return ErrNoRecipients
	}

	from, err := resolveFrom(msg, g.defaultFrom)
	if err != nil {
		return err
	}

	m, err := g.buildMsg(from, msg)
	if err != nil {
		return err
	}

	if err := g.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mail: gomail send: %w", err)
	}

	return nil
}

func (g *GoMail) buildMsg(from string, msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("mail: gomail from: %w", err)
	}
	if len(msg.To) > 0 {
		if err := m.To(msg.To...); err != nil {
			return nil, fmt.Errorf("mail: gomail to: %w", err)
		}
	}
	if len(msg.Cc) > 0 {
		if err := m.Cc(msg.Cc...); err != nil {
			return nil, fmt.Errorf("mail: gomail cc: %w", err)
		}
	}
	if len(msg.Bcc) > 0 {
		if err := m.Bcc(msg.Bcc...); err != nil {
			return nil, fmt.Errorf("mail: gomail bcc: %w", err)
		}
	}

	m.Subject(msg.Subject)
	for _, key := range msg.HeaderKeys() {
		m.SetGenHeader(gomail.Header(key), msg.Headers[key])
	}

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)
	default:
		m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	}

	return m, nil
}

// Close implements io.Closer; sessions are closed after every send.
func (g *GoMail) Close() error {
	return nil
}

func tlsPolicy(name string) gomail.TLSPolicy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case TLSPolicyMandatory:
		return gomail.TLSMandatory
	case TLSPolicyNone:
		return gomail.NoTLS
	default:
		return gomail.TLSOpportunistic
	}
}
