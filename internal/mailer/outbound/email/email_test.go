package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/mailbridge/internal/pkg/mail"
)

type stubClient struct {
	got []mail.Message
	err error
}

func (s *stubClient) Send(_ context.Context, msg mail.Message) error {
	s.got = append(s.got, msg)
	return s.err
}

func (s *stubClient) Close() error { return nil }

func TestMail_Send(t *testing.T) {

	t.Run("Forwards", func(t *testing.T) {

		// Arrange
		client := &stubClient{}
		m := New(client, nil)
		msg := mail.Message{To: []string{"user@example.com"}, TextBody: "hi"}

		// Act
		err := m.Send(context.Background(), msg)

		// Assert
		require.NoError(t, err)
		require.Len(t, client.got, 1)
		assert.Equal(t, msg, client.got[0])
	})

	t.Run("ReturnsSameError", func(t *testing.T) {

		// Arrange
		errSend := errors.New("boom")
		m := New(&stubClient{err: errSend}, nil)

		// Act
		err := m.Send(context.Background(), mail.Message{To: []string{"user@example.com"}})

		// Assert
		assert.Same(t, errSend, err)
	})
}
