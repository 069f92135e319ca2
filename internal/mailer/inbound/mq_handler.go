package inbound

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/mailbridge/internal/mailer/usecase"
	"github.com/shandysiswandi/mailbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/mailbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/mailbridge/internal/pkg/uid"
	"github.com/shandysiswandi/mailbridge/internal/shared/event"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := messaging.HeaderValue(msg, event.MailerTriggerHeaderCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// TriggerRoute runs the mail route for one trigger message. It always returns
// nil so the message is acked whatever the delivery outcome.
func (h *MQHandler) TriggerRoute(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("mailer.inbound.mq").Start(ctx, "TriggerRoute")
	defer span.End()

	to := messaging.HeaderValue(msg, event.MailerTriggerHeaderTo)
	slog.InfoContext(ctx, "consume: mailer trigger", "msg_id", msg.ID(), "source", msg.Source(), "to", to, "msg_size", len(msg.Body()))

	endpoint := msg.Source()
	if endpoint == "" {
		endpoint = event.MailerTriggerDestination
	}

	h.uc.Route(ctx, usecase.RouteInput{
		Endpoint: endpoint,
		To:       to,
		Body:     string(msg.Body()),
	})

	return nil
}
