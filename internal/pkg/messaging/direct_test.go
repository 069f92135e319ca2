package messaging

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDirectConsumer(t *testing.T, d *Direct, endpoint string, h Handler) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Consume(ctx, endpoint, h) }()

	require.Eventually(t, func() bool { return d.HasConsumer(endpoint) }, time.Second, 5*time.Millisecond)
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestDirect(t *testing.T) {

	t.Run("PublishRunsHandlerSynchronously", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		var got Message
		startDirectConsumer(t, d, "mailer_trigger", func(_ context.Context, msg Message) error {
			got = msg
			return nil
		})

		// Act
		res, err := d.Publish(context.Background(), "mailer_trigger", OutgoingMessage{
			Body:    []byte("Hello, world!"),
			Headers: NewHeaders(map[string]string{"to": "user@example.com"}),
		})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "mailer_trigger", res.Destination)
		assert.Equal(t, res.MessageID, got.ID())
		assert.Equal(t, "Hello, world!", string(got.Body()))
		assert.Equal(t, "user@example.com", HeaderValue(got, "TO"))
		assert.Equal(t, "mailer_trigger", got.Source())
		assert.NoError(t, got.Ack(context.Background()))
	})

	t.Run("HandlerErrorReturned", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		boom := errors.New("boom")
		startDirectConsumer(t, d, "e", func(context.Context, Message) error { return boom })

		// Act
		_, err := d.Publish(context.Background(), "e", OutgoingMessage{})

		// Assert
		assert.ErrorIs(t, err, boom)
	})

	t.Run("HandlerPanicRecovered", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		startDirectConsumer(t, d, "e", func(context.Context, Message) error { panic("kaboom") })

		// Act
		_, err := d.Publish(context.Background(), "e", OutgoingMessage{})

		// Assert
		assert.ErrorIs(t, err, ErrHandlerPanic)
		assert.Contains(t, err.Error(), "kaboom")
	})

	t.Run("NoConsumer", func(t *testing.T) {

		// Arrange
		d := NewDirect()

		// Act
		_, err := d.Publish(context.Background(), "nobody", OutgoingMessage{})

		// Assert
		assert.ErrorIs(t, err, ErrDirectNoConsumer)
	})

	t.Run("DuplicateConsumer", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		startDirectConsumer(t, d, "e", func(context.Context, Message) error { return nil })

		// Act
		err := d.Consume(context.Background(), "e", func(context.Context, Message) error { return nil })

		// Assert
		assert.ErrorIs(t, err, ErrDirectConsumerExists)
	})

	t.Run("ConsumerUnregistersOnCancel", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- d.Consume(ctx, "e", func(context.Context, Message) error { return nil }) }()
		require.Eventually(t, func() bool { return d.HasConsumer("e") }, time.Second, 5*time.Millisecond)

		// Act
		cancel()
		err := <-done

		// Assert
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, d.HasConsumer("e"))
	})

	t.Run("CloseReleasesConsumers", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		done := make(chan error, 1)
		go func() {
			done <- d.Consume(context.Background(), "e", func(context.Context, Message) error { return nil })
		}()
		require.Eventually(t, func() bool { return d.HasConsumer("e") }, time.Second, 5*time.Millisecond)

		// Act
		require.NoError(t, d.Close())
		require.NoError(t, d.Close())

		// Assert
		assert.NoError(t, <-done)
		_, err := d.Publish(context.Background(), "e", OutgoingMessage{})
		assert.Error(t, err)
	})

	t.Run("Validation", func(t *testing.T) {

		// Arrange
		d := NewDirect()

		// Act
		_, errDest := d.Publish(context.Background(), "", OutgoingMessage{})
		_, errDelay := d.Publish(context.Background(), "e", OutgoingMessage{Delay: time.Second})
		errSource := d.Consume(context.Background(), "", func(context.Context, Message) error { return nil })
		errHandler := d.Consume(context.Background(), "e", nil)

		// Assert
		assert.ErrorIs(t, errDest, ErrDirectEndpointRequired)
		assert.ErrorIs(t, errDelay, ErrUnsupported)
		assert.ErrorIs(t, errSource, ErrDirectEndpointRequired)
		assert.ErrorIs(t, errHandler, ErrDirectHandlerRequired)
	})

	t.Run("ConcurrentPublishers", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		var mu sync.Mutex
		count := 0
		startDirectConsumer(t, d, "e", func(context.Context, Message) error {
			mu.Lock()
			count++
			mu.Unlock()
			return nil
		})

		// Act
		var wg sync.WaitGroup
		for range 20 {
			wg.Go(func() {
				_, _ = d.Publish(context.Background(), "e", OutgoingMessage{})
			})
		}
		wg.Wait()

		// Assert
		assert.Equal(t, 20, count)
	})

	t.Run("WaitConsumerReturnsOnceAttached", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		waited := make(chan error, 1)
		go func() { waited <- d.WaitConsumer(ctx, "e") }()

		// Act
		go func() { _ = d.Consume(ctx, "e", func(context.Context, Message) error { return nil }) }()

		// Assert
		select {
		case err := <-waited:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("consumer was never reported as attached")
		}
		_, err := d.Publish(context.Background(), "e", OutgoingMessage{})
		assert.NoError(t, err)
	})

	t.Run("WaitConsumerAlreadyAttached", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		startDirectConsumer(t, d, "e", func(context.Context, Message) error { return nil })

		// Act
		err := d.WaitConsumer(context.Background(), "e")

		// Assert
		assert.NoError(t, err)
	})

	t.Run("WaitConsumerDeadline", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		// Act
		err := d.WaitConsumer(ctx, "nobody")

		// Assert
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("WaitConsumerClosed", func(t *testing.T) {

		// Arrange
		d := NewDirect()
		require.NoError(t, d.Close())

		// Act
		err := d.WaitConsumer(context.Background(), "e")

		// Assert
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	})
}
