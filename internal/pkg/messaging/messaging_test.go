package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct {
	responder

	headers []Header
	acks    int
	nacks   int
}

func (m *fakeMessage) Body() []byte         { return nil }
func (m *fakeMessage) Key() []byte          { return nil }
func (m *fakeMessage) Headers() []Header    { return m.headers }
func (m *fakeMessage) ID() string           { return "1" }
func (m *fakeMessage) Source() string       { return "fake" }
func (m *fakeMessage) Timestamp() time.Time { return time.Time{} }

func (m *fakeMessage) Ack(context.Context) error {
	if m.respond() {
		m.acks++
	}
	return nil
}

func (m *fakeMessage) Nack(context.Context) error {
	if m.respond() {
		m.nacks++
	}
	return nil
}

func TestNewHeaders(t *testing.T) {

	// Act
	got := NewHeaders(map[string]string{"to": "a@example.com", "": "skip", "cID": "123"})

	// Assert
	assert.Equal(t, []Header{
		{Key: "cID", Value: []byte("123")},
		{Key: "to", Value: []byte("a@example.com")},
	}, got)
}

func TestHeaderValue(t *testing.T) {

	// Arrange
	msg := &fakeMessage{headers: []Header{{Key: "Cid", Value: []byte("abc")}}}

	// Act & Assert
	assert.Equal(t, "abc", HeaderValue(msg, "cID"))
	assert.Empty(t, HeaderValue(msg, "to"))
}

func TestDispatch(t *testing.T) {

	t.Run("AutoAckOnSuccess", func(t *testing.T) {

		// Arrange
		msg := &fakeMessage{}

		// Act
		err := dispatch(context.Background(), "fake", func(context.Context, Message) error { return nil }, msg, true)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, msg.acks)
		assert.Equal(t, 0, msg.nacks)
	})

	t.Run("AutoNackOnError", func(t *testing.T) {

		// Arrange
		msg := &fakeMessage{}

		// Act
		err := dispatch(context.Background(), "fake", func(context.Context, Message) error { return errors.New("x") }, msg, true)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, msg.nacks)
	})

	t.Run("AutoNackOnPanic", func(t *testing.T) {

		// Arrange
		msg := &fakeMessage{}

		// Act
		err := dispatch(context.Background(), "fake", func(context.Context, Message) error { panic("p") }, msg, true)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, msg.nacks)
	})

	t.Run("HandlerAlreadyResponded", func(t *testing.T) {

		// Arrange
		msg := &fakeMessage{}

		// Act
		err := dispatch(context.Background(), "fake", func(ctx context.Context, m Message) error {
			return m.Ack(ctx)
		}, msg, true)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, msg.acks)
		assert.Equal(t, 0, msg.nacks)
	})

	t.Run("ManualAck", func(t *testing.T) {

		// Arrange
		msg := &fakeMessage{}

		// Act
		err := dispatch(context.Background(), "fake", func(context.Context, Message) error { return nil }, msg, false)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, msg.acks+msg.nacks)
	})
}

func TestConsumeOptions(t *testing.T) {

	t.Run("ParamsOverrideFields", func(t *testing.T) {

		// Act
		co := newConsumeOptions(
			WithQueueGroup("q1"),
			WithSubscription("s1"),
			WithAutoAck(false),
			WithParam("queue_group", "q2"),
			WithParam("auto_ack", "true"),
			nil,
		)

		// Assert
		assert.Equal(t, "q2", co.queueGroupName())
		assert.Equal(t, "s1", co.subscriptionName())
		assert.True(t, co.shouldAutoAck())
		assert.Equal(t, 1, co.workers())
	})

	t.Run("Concurrency", func(t *testing.T) {

		// Act
		co := newConsumeOptions(WithConcurrency(4), WithMaxInFlight(10), WithGroup("g"))

		// Assert
		assert.Equal(t, 4, co.workers())
		assert.Equal(t, 10, co.maxInFlight)
		assert.Equal(t, "g", co.group)
	})
}

func TestHeadersToAttributes(t *testing.T) {

	// Act
	got := headersToAttributes([]Header{
		{Key: "to", Value: []byte("a")},
		{Key: "to", Value: []byte("b")},
		{Key: "", Value: []byte("c")},
	})

	// Assert
	assert.Equal(t, map[string]string{"to": "a"}, got)
}

func TestNewFromDriver(t *testing.T) {

	t.Run("DefaultIsDirect", func(t *testing.T) {

		// Act
		m, err := NewFromDriver(context.Background(), "", FactoryOptions{})

		// Assert
		require.NoError(t, err)
		assert.IsType(t, &Direct{}, m)
		assert.NoError(t, m.Close())
	})

	t.Run("KafkaNeedsBrokers", func(t *testing.T) {

		// Act
		_, err := NewFromDriver(context.Background(), DriverKafka, FactoryOptions{})

		// Assert
		assert.ErrorIs(t, err, ErrKafkaBrokersRequired)
	})

	t.Run("KafkaLazy", func(t *testing.T) {

		// Act
		m, err := NewFromDriver(context.Background(), DriverKafka, FactoryOptions{
			Kafka: KafkaConfig{Brokers: []string{"127.0.0.1:9092"}, ClientID: "mailbridge"},
		})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, m.Close())
	})

	t.Run("NATSNeedsURL", func(t *testing.T) {

		// Act
		_, err := NewFromDriver(context.Background(), DriverNATS, FactoryOptions{})

		// Assert
		assert.ErrorIs(t, err, ErrNATSURLRequired)
	})

	t.Run("PubSubNeedsProject", func(t *testing.T) {

		// Act
		_, err := NewFromDriver(context.Background(), DriverGooglePubSub, FactoryOptions{})

		// Assert
		assert.ErrorIs(t, err, ErrPubSubProjectIDRequired)
	})

	t.Run("Unknown", func(t *testing.T) {

		// Act
		_, err := NewFromDriver(context.Background(), "nsq", FactoryOptions{})

		// Assert
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}
