package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

var (
	// ErrDirectEndpointRequired is returned when the endpoint name is empty.
	ErrDirectEndpointRequired = errors.New("messaging: direct endpoint is required")
	// ErrDirectHandlerRequired is returned when Consume is called with a nil handler.
	ErrDirectHandlerRequired = errors.New("messaging: direct handler is required")
	// ErrDirectNoConsumer is returned when publishing to an endpoint nobody consumes.
	ErrDirectNoConsumer = errors.New("messaging: direct endpoint has no consumer")
	// ErrDirectConsumerExists is returned when a second consumer registers on an endpoint.
	ErrDirectConsumerExists = errors.New("messaging: direct endpoint already has a consumer")
)

// Direct is an in-process, synchronous messaging implementation.
//
// Each endpoint has at most one consumer. Publish runs that consumer's handler
// in the caller's goroutine and returns the handler's error.
type Direct struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	waiters  map[string]chan struct{}

	seq    atomic.Uint64
	closed atomic.Bool
	done   chan struct{}
}

// NewDirect constructs an in-process messaging client.
func NewDirect() *Direct {
	return &Direct{
		handlers: map[string]Handler{},
		waiters:  map[string]chan struct{}{},
		done:     make(chan struct{}),
	}
}

// Close releases every blocked Consume call. It is safe to call more than once.
func (d *Direct) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	close(d.done)
	return nil
}

// Publish delivers msg to the consumer of destination and waits for it.
func (d *Direct) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDirectEndpointRequired
	}
	if d.closed.Load() {
		return PublishResult{}, io.ErrClosedPipe
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	d.mu.RLock()
	handler, ok := d.handlers[destination]
	d.mu.RUnlock()
	if !ok {
		return PublishResult{}, fmt.Errorf("%w: %s", ErrDirectNoConsumer, destination)
	}

	res := PublishResult{
		MessageID:   strconv.FormatUint(d.seq.Inc(), 10),
		Destination: destination,
		Timestamp:   time.Now(),
	}

	dm := &directMessage{
		id:        res.MessageID,
		endpoint:  destination,
		body:      slices.Clone(msg.Body),
		key:       slices.Clone(msg.Key),
		headers:   slices.Clone(msg.Headers),
		timestamp: res.Timestamp,
	}

	err := callHandlerWithRecover(ctx, "direct", func() error {
		return handler(ctx, dm)
	})

	return res, err
}

// Consume registers handler as the sole consumer of source and blocks until
// ctx is done or the client is closed.
func (d *Direct) Consume(ctx context.Context, source string, handler Handler, _ ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrDirectEndpointRequired
	}
	if handler == nil {
		return ErrDirectHandlerRequired
	}
	if d.closed.Load() {
		return io.ErrClosedPipe
	}

	if err := d.register(source, handler); err != nil {
		return err
	}
	defer d.unregister(source)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return nil
	}
}

// HasConsumer reports whether an endpoint currently has a consumer.
func (d *Direct) HasConsumer(endpoint string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[endpoint]
	return ok
}

// WaitConsumer blocks until endpoint has a consumer, ctx is done or the
// client is closed.
func (d *Direct) WaitConsumer(ctx context.Context, endpoint string) error {
	d.mu.Lock()
	if _, ok := d.handlers[endpoint]; ok {
		d.mu.Unlock()
		return nil
	}
	ready, ok := d.waiters[endpoint]
	if !ok {
		ready = make(chan struct{})
		d.waiters[endpoint] = ready
	}
	d.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-d.done:
		return io.ErrClosedPipe
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Direct) register(endpoint string, handler Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.handlers[endpoint]; ok {
		return fmt.Errorf("%w: %s", ErrDirectConsumerExists, endpoint)
	}
	d.handlers[endpoint] = handler
	if ready, ok := d.waiters[endpoint]; ok {
		close(ready)
		delete(d.waiters, endpoint)
	}
	return nil
}

func (d *Direct) unregister(endpoint string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handlers, endpoint)
}

type directMessage struct {
	id        string
	endpoint  string
	body      []byte
	key       []byte
	headers   []Header
	timestamp time.Time
}

func (m *directMessage) Body() []byte         { return m.body }
func (m *directMessage) Key() []byte          { return m.key }
func (m *directMessage) Headers() []Header    { return m.headers }
func (m *directMessage) ID() string           { return m.id }
func (m *directMessage) Source() string       { return m.endpoint }
func (m *directMessage) Timestamp() time.Time { return m.timestamp }

// Ack is a no-op; delivery is complete once the handler returns.
func (m *directMessage) Ack(ctx context.Context) error {
	return ctx.Err()
}
