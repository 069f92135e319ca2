package mail

import (
	"context"
	"errors"
	"mime"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/mailbridge/internal/pkg/mail/mailtest"
)

func TestNewSMTP(t *testing.T) {

	t.Run("HostPortRequired", func(t *testing.T) {

		// Act
		_, err := NewSMTP(SMTPConfig{Host: "127.0.0.1"})

		// Assert
		assert.ErrorIs(t, err, ErrHostPortRequired)
	})

	t.Run("AuthOnlyWithCredentials", func(t *testing.T) {

		// Act
		withAuth, err1 := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: 25, Username: "mailer", Password: "secret"})
		noAuth, err2 := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: 25})

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotNil(t, withAuth.auth)
		assert.Nil(t, noAuth.auth)
		assert.Equal(t, "127.0.0.1:25", noAuth.addr)
	})
}

func TestSMTPSend(t *testing.T) {

	t.Run("DeliversWithHeaders", func(t *testing.T) {

		// Arrange
		srv := mailtest.NewServer(t)
		sender, err := NewSMTP(SMTPConfig{Host: srv.Host(), Port: srv.Port(), From: "noreply@example.com"})
		require.NoError(t, err)
		msg := Message{
			To:       []string{"user@example.com"},
			Subject:  "Hello, world!",
			TextBody: "Hello, world!",
			Headers:  map[string]string{"X-Sender-Id": "0b3a2b0e-1111-4222-8333-444455556666"},
		}

		// Act
		err = sender.Send(context.Background(), msg)

		// Assert
		require.NoError(t, err)
		got := srv.Messages()
		require.Len(t, got, 1)
		assert.Equal(t, "noreply@example.com", got[0].From)
		assert.Equal(t, []string{"user@example.com"}, got[0].To)
		assert.Equal(t, "Hello, world!", got[0].Header.Get("Subject"))
		assert.Equal(t, "0b3a2b0e-1111-4222-8333-444455556666", got[0].Header.Get("X-Sender-Id"))
		assert.Equal(t, "Hello, world!", got[0].Body)
	})

	t.Run("WithPlainAuth", func(t *testing.T) {

		// Arrange
		srv := mailtest.NewServer(t, mailtest.WithAuth("mailer", "secret"))
		sender, err := NewSMTP(SMTPConfig{Host: srv.Host(), Port: srv.Port(), Username: "mailer", Password: "secret"})
		require.NoError(t, err)

		// Act
		err = sender.Send(context.Background(), Message{
			From:     "person@example.com",
			To:       []string{"someone@example.com"},
			Subject:  "Mail from Notifications!",
			TextBody: "hi",
		})

		// Assert
		require.NoError(t, err)
		got := srv.Messages()
		require.Len(t, got, 1)
		assert.Equal(t, "person@example.com", got[0].From)
	})

	t.Run("WrongCredentials", func(t *testing.T) {

		// Arrange
		srv := mailtest.NewServer(t, mailtest.WithAuth("mailer", "secret"))
		sender, err := NewSMTP(SMTPConfig{Host: srv.Host(), Port: srv.Port(), Username: "mailer", Password: "wrong"})
		require.NoError(t, err)

		// Act
		err = sender.Send(context.Background(), Message{From: "a@example.com", To: []string{"b@example.com"}})

		// Assert
		require.Error(t, err)
		assert.Empty(t, srv.Messages())
	})

	t.Run("NoRecipients", func(t *testing.T) {

		// Arrange
		sender, err := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: 25, From: "a@example.com"})
		require.NoError(t, err)

		// Act
		err = sender.Send(context.Background(), Message{})

		// Assert
		assert.ErrorIs(t, err, ErrNoRecipients)
	})

	t.Run("NoSender", func(t *testing.T) {

		// Arrange
		sender, err := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: 25})
		require.NoError(t, err)

		// Act
		err = sender.Send(context.Background(), Message{To: []string{"b@example.com"}})

		// Assert
		assert.ErrorIs(t, err, ErrNoSender)
	})

	t.Run("CanceledContext", func(t *testing.T) {

		// Arrange
		sender, err := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: 25, From: "a@example.com"})
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		err = sender.Send(ctx, Message{To: []string{"b@example.com"}})

		// Assert
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("TransportErrorWrapped", func(t *testing.T) {

		// Arrange
		boom := errors.New("connection refused")
		sender, err := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: 25, From: "a@example.com"})
		require.NoError(t, err)
		sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }

		// Act
		err = sender.Send(context.Background(), Message{To: []string{"b@example.com"}})

		// Assert
		assert.ErrorIs(t, err, boom)
	})
}

func TestBuildRaw(t *testing.T) {

	t.Run("HeaderInjectionStripped", func(t *testing.T) {

		// Arrange
		msg := Message{
			To:       []string{"b@example.com"},
			Subject:  "hi\r\nBcc: evil@example.com",
			TextBody: "body",
		}

		// Act
		raw := buildRaw("a@example.com", msg, time.Unix(0, 0).UTC())

		// Assert
		assert.NotContains(t, raw, "\r\nBcc:")
		assert.Contains(t, raw, "Subject: hiBcc: evil@example.com\r\n")
	})

	t.Run("NonASCIIHeadersEncoded", func(t *testing.T) {

		// Arrange
		msg := Message{
			To:       []string{"b@example.com"},
			Subject:  "Grüße from café",
			TextBody: "body",
			Headers:  map[string]string{"X-Note": "naïve", "X-Sender-Id": "0b6a7d2e"},
		}

		// Act
		raw := buildRaw("a@example.com", msg, time.Unix(0, 0).UTC())

		// Assert
		headers := map[string]string{}
		for _, line := range strings.Split(strings.SplitN(raw, "\r\n\r\n", 2)[0], "\r\n") {
			name, value, _ := strings.Cut(line, ": ")
			headers[name] = value
		}
		assert.True(t, strings.HasPrefix(headers["Subject"], "=?utf-8?q?"))
		var dec mime.WordDecoder
		subject, err := dec.DecodeHeader(headers["Subject"])
		require.NoError(t, err)
		assert.Equal(t, "Grüße from café", subject)
		note, err := dec.DecodeHeader(headers["X-Note"])
		require.NoError(t, err)
		assert.Equal(t, "naïve", note)
		assert.Equal(t, "0b6a7d2e", headers["X-Sender-Id"])
	})

	t.Run("Multipart", func(t *testing.T) {

		// Arrange
		msg := Message{To: []string{"b@example.com"}, TextBody: "plain", HTMLBody: "<p>html</p>"}

		// Act
		raw := buildRaw("a@example.com", msg, time.Unix(0, 0).UTC())

		// Assert
		assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=mailbridge-boundary-")
		assert.True(t, strings.Contains(raw, "plain") && strings.Contains(raw, "<p>html</p>"))
	})
}
