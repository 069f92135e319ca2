package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := map[string][]string{
		"":              nil,
		"Email":         {"Email"},
		"HTTPServer":    {"HTTP", "Server"},
		"X-Sender-Id":   {"X", "Sender", "Id"},
		"mail.from":     {"mail", "from"},
		"  reply  to  ": {"reply", "to"},
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Words(in))
		})
	}
}

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"Email":         "email",
		"ReplyTo":       "reply_to",
		"SenderID":      "sender_id",
		"HTTPServer":    "http_server",
		"userID2FA":     "user_id2_fa",
		"X-Sender-Id":   "x_sender_id",
		"already_snake": "already_snake",
		"__Trailing__":  "trailing",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ToLowerSnake(in))
		})
	}
}
