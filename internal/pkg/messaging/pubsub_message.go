package messaging

import (
	"context"
	"time"

	"cloud.google.com/go/pubsub/v2"
)

type pubSubMessage struct {
	responder

	topic        string
	subscription string
	msg          *pubsub.Message
}

func newPubSubMessage(topic, subscription string, msg *pubsub.Message) *pubSubMessage {
	return &pubSubMessage{topic: topic, subscription: subscription, msg: msg}
}

func (m *pubSubMessage) Body() []byte { return m.msg.Data }
func (m *pubSubMessage) Key() []byte  { return []byte(m.msg.OrderingKey) }

func (m *pubSubMessage) Headers() []Header {
	return NewHeaders(m.msg.Attributes)
}

func (m *pubSubMessage) ID() string { return m.msg.ID }

func (m *pubSubMessage) Source() string {
	if m.topic != "" {
		return m.topic
	}
	return m.subscription
}

func (m *pubSubMessage) Timestamp() time.Time { return m.msg.PublishTime }

func (m *pubSubMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.respond() {
		m.msg.Ack()
	}
	return nil
}

func (m *pubSubMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.respond() {
		m.msg.Nack()
	}
	return nil
}
