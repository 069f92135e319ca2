package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/shandysiswandi/mailbridge/internal/mailer/entity"
)

// ErrTransportPanic wraps a panic raised while handing a message to the transport.
var ErrTransportPanic = errors.New("mailer: transport panicked")

type RouteInput struct {
	// Endpoint is the trigger destination the message arrived on.
	Endpoint string
	// To is the recipient requested by the producer. The route overwrites it.
	To   string
	Body string
}

// Route delivers one message with the fixed route sender, subject and
// recipient and a fresh sender id. Failures are logged and counted, never returned.
func (s *Usecase) Route(ctx context.Context, in RouteInput) {
	ctx, span := s.startSpan(ctx, "Route")
	defer span.End()

	endpoint := routeEndpoint(in.Endpoint)

	err := s.deliverRoute(ctx, in)
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.ErrorContext(ctx, fmt.Sprintf("Caught an exception on %s", endpoint), "requested_to", in.To, "error", err)
	if s.routeFailures != nil {
		s.routeFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", endpoint)))
	}
}

func (s *Usecase) deliverRoute(ctx context.Context, in RouteInput) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			err = fmt.Errorf("%w: %v", ErrTransportPanic, rvr)
		}
	}()

	msg := entity.OutboundMessage{
		To:      s.routeTo,
		From:    s.routeFrom,
		Subject: s.routeSubject,
		Body:    in.Body,
		Headers: map[string]string{entity.HeaderSenderID: s.uuid.Generate()},
	}

	return s.repoMail.Send(ctx, msg.ToMail())
}
