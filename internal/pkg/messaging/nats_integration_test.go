//go:build integration

package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
)

func TestNATSRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	// Arrange
	ctx := context.Background()
	container, err := tcnats.Run(ctx, "nats:2.10-alpine")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	testcontainers.CleanupContainer(t, container)
	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := NewNATS(NATSConfig{URL: url, Name: "mailbridge-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	received := make(chan Message, 1)
	consumeCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- client.Consume(consumeCtx, "mailer_trigger", func(_ context.Context, msg Message) error {
			received <- msg
			return nil
		}, WithQueueGroup("mailer_trigger_route"), WithAutoAck(true))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Act
	var msg Message
	require.Eventually(t, func() bool {
		_, perr := client.Publish(ctx, "mailer_trigger", OutgoingMessage{
			Body:    []byte("Hello, world!"),
			Headers: NewHeaders(map[string]string{"to": "user@example.com"}),
		})
		if perr != nil {
			return false
		}
		select {
		case msg = <-received:
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 100*time.Millisecond)

	// Assert
	assert.Equal(t, "Hello, world!", string(msg.Body()))
	assert.Equal(t, "user@example.com", HeaderValue(msg, "to"))
	assert.Equal(t, "mailer_trigger", msg.Source())
}
