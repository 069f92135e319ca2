package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/mailbridge/internal/pkg/mail/mailtest"
)

func TestGoMailSend(t *testing.T) {

	t.Run("Delivers", func(t *testing.T) {

		// Arrange
		srv := mailtest.NewServer(t)
		sender, err := NewGoMail(GoMailConfig{
			Host:      srv.Host(),
			Port:      srv.Port(),
			From:      "noreply@example.com",
			TLSPolicy: TLSPolicyNone,
		})
		require.NoError(t, err)

		// Act
		err = sender.Send(context.Background(), Message{
			To:       []string{"user@example.com"},
			Subject:  "Hello, world!",
			TextBody: "Hello, world!",
			Headers:  map[string]string{"X-Sender-Id": "abc"},
		})

		// Assert
		require.NoError(t, err)
		got := srv.Messages()
		require.Len(t, got, 1)
		assert.Equal(t, []string{"user@example.com"}, got[0].To)
		assert.Equal(t, "Hello, world!", got[0].Header.Get("Subject"))
		assert.Equal(t, "abc", got[0].Header.Get("X-Sender-Id"))
		assert.Equal(t, "Hello, world!", got[0].Body)
	})

	t.Run("HostPortRequired", func(t *testing.T) {

		// Act
		_, err := NewGoMail(GoMailConfig{})

		// Assert
		assert.ErrorIs(t, err, ErrHostPortRequired)
	})

	t.Run("NoRecipients", func(t *testing.T) {

		// Arrange
		sender, err := NewGoMail(GoMailConfig{Host: "127.0.0.1", Port: 25, From: "a@example.com"})
		require.NoError(t, err)

		// Act
		err = sender.Send(context.Background(), Message{})

		// Assert
		assert.ErrorIs(t, err, ErrNoRecipients)
	})
}
