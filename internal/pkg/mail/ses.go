package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESConfig configures the Amazon SES v2 implementation.
type SESConfig struct {
	// Region is the AWS region.
	Region string
	// Endpoint overrides the AWS endpoint (e.g. localstack).
	Endpoint string
	// AccessKey is the static access key ID.
	AccessKey string
	// SecretKey is the static secret access key.
	SecretKey string
	// SessionToken is the optional session token.
	SessionToken string
	// From is the default sender when Message.From is empty.
	From string
}

// SES is a Mail implementation backed by Amazon SES v2.
//
// Messages are sent as raw MIME so extra headers survive delivery.
type SES struct {
	client      *sesv2.Client
	defaultFrom string
}

// NewSES constructs an SES sender from static or default AWS credentials.
func NewSES(ctx context.Context, cfg SESConfig) (*SES, error) {
	cfgOpts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(cfg.Region))
	} else if cfg.Endpoint != "" {
		cfgOpts = append(cfgOpts, config.WithRegion("us-east-1"))
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("mail: load aws config: %w", err)
	}

	client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewSESWithClient(client, cfg.From), nil
}

// NewSESWithClient wraps an existing SES v2 client.
func NewSESWithClient(client *sesv2.Client, defaultFrom string) *SES {
	return &SES{client: client, defaultFrom: defaultFrom}
}

// Send delivers a message through SES SendEmail with raw content.
func (s *SES) Send(ctx context.Context, msg Message) error {
	recipients := msg.Recipients()
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	from, err := resolveFrom(msg, s.defaultFrom)
	if err != nil {
		return err
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses:  msg.To,
			CcAddresses:  msg.Cc,
			BccAddresses: msg.Bcc,
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: []byte(buildRaw(from, msg, time.Now()))},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("mail: ses send: %w", err)
	}

	return nil
}

// Close implements io.Closer.
func (s *SES) Close() error {
	return nil
}
