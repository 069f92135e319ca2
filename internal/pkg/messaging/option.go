package messaging

import "strconv"

type consumeOptions struct {
	// concurrency is the number of handler goroutines.
	concurrency int

	// autoAck makes the driver ack on a nil handler error and nack otherwise.
	autoAck bool

	// group is the Kafka consumer group.
	group string

	// queueGroup is the NATS queue group.
	queueGroup string

	// subscription is the Google Pub/Sub subscription.
	subscription string

	// maxInFlight caps outstanding unacknowledged messages.
	maxInFlight int

	// params holds driver-specific settings keyed by name
	// ("queue_group", "subscription", "auto_ack").
	params map[string]string
}

// ConsumeOption configures consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	var co consumeOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&co)
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup sets the consumer group name (Kafka).
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithQueueGroup sets the queue group name (NATS).
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithSubscription sets the subscription name (Google Pub/Sub).
func WithSubscription(subscription string) ConsumeOption {
	return func(o *consumeOptions) { o.subscription = subscription }
}

// WithAutoAck controls whether the driver acks/nacks after the handler returns.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}

// WithMaxInFlight limits the maximum number of unacknowledged messages in flight.
func WithMaxInFlight(maxInFlight int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = maxInFlight }
}

// WithParam sets a single driver-specific parameter.
func WithParam(key, value string) ConsumeOption {
	return func(o *consumeOptions) {
		if key == "" {
			return
		}
		if o.params == nil {
			o.params = make(map[string]string, 1)
		}
		o.params[key] = value
	}
}

// param returns a driver parameter, falling back to def when unset or empty.
func (o consumeOptions) param(key, def string) string {
	if v, ok := o.params[key]; ok && v != "" {
		return v
	}
	return def
}

func (o consumeOptions) queueGroupName() string {
	return o.param("queue_group", o.queueGroup)
}

func (o consumeOptions) subscriptionName() string {
	return o.param("subscription", o.subscription)
}

func (o consumeOptions) shouldAutoAck() bool {
	if b, err := strconv.ParseBool(o.param("auto_ack", "")); err == nil {
		return b
	}
	return o.autoAck
}

func (o consumeOptions) workers() int {
	if o.concurrency <= 0 {
		return 1
	}
	return o.concurrency
}
