package messaging

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ErrUnsupported is returned when a feature is not supported by the selected broker.
//
// For example, not all brokers support delayed delivery.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject/endpoint).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source (subscription/subject/endpoint).
type Consumer interface {
	// Consume blocks and feeds messages from source to handler until ctx is done.
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// ConsumerWaiter is implemented by drivers that can report when a consumer
// started with Consume is attached and receiving.
type ConsumerWaiter interface {
	WaitConsumer(ctx context.Context, source string) error
}

// Handler processes a received message.
//
// Returning a non-nil error does not imply any particular broker behavior.
// With auto-ack enabled the drivers ack on nil and nack otherwise.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning.
	Key []byte

	// Headers are carried as native headers (NATS, Kafka) or as string
	// attributes (Pub/Sub).
	Headers []Header

	// OrderingKey is used by Google Pub/Sub.
	OrderingKey string

	// Delay is used for deferred delivery (when supported).
	Delay time.Duration
}

// Header is a key/value pair used for message headers.
type Header struct {
	// Key is the header name.
	Key string
	// Value is the header value.
	Value []byte
}

// NewHeaders builds a header list from string pairs sorted by key,
// skipping empty keys.
func NewHeaders(kv map[string]string) []Header {
	keys := lo.Without(lo.Keys(kv), "")
	slices.Sort(keys)

	return lo.Map(keys, func(k string, _ int) Header {
		return Header{Key: k, Value: []byte(kv[k])}
	})
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID.
	MessageID string
	// Destination is the topic/subject/endpoint used for publishing.
	Destination string
	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Key returns the message key.
	Key() []byte
	// Headers returns message headers.
	Headers() []Header

	// ID returns the broker message ID.
	ID() string
	// Source returns the topic, subject or endpoint the message came from.
	Source() string
	// Timestamp returns the broker timestamp.
	Timestamp() time.Time

	// Ack acknowledges successful processing (delete/commit/ack).
	Ack(ctx context.Context) error
}

// Nackable can request a message redelivery (nack/requeue/negative ack).
type Nackable interface {
	// Nack requests a message redelivery.
	Nack(ctx context.Context) error
}

// HeaderValue returns the first value of the named header, or "" when absent.
// Names compare case-insensitively since NATS canonicalizes header keys.
func HeaderValue(msg Message, key string) string {
	for _, h := range msg.Headers() {
		if strings.EqualFold(h.Key, key) {
			return string(h.Value)
		}
	}
	return ""
}

// IgnoreCanceled maps the context.Canceled returned by a Consume that was
// stopped on shutdown to nil.
func IgnoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
