package entity

import (
	"maps"

	"github.com/shandysiswandi/mailbridge/internal/pkg/mail"
)

// HeaderSenderID carries the per-send random identifier set by the route.
const HeaderSenderID = "X-Sender-Id"

// OutboundMessage is one email built by a use case and handed to the transport.
type OutboundMessage struct {
	To      string
	From    string
	Subject string
	Body    string
	Headers map[string]string
}

// ToMail converts the message to the transport payload with a plain-text body.
// An empty From lets the transport apply its default sender.
func (m OutboundMessage) ToMail() mail.Message {
	msg := mail.Message{
		From:     m.From,
		Subject:  m.Subject,
		TextBody: m.Body,
		Headers:  maps.Clone(m.Headers),
	}
	if m.To != "" {
		msg.To = []string{m.To}
	}
	return msg
}
