package inbound

import (
	"errors"
	"log/slog"

	"github.com/shandysiswandi/mailbridge/internal/mailer/usecase"
	"github.com/shandysiswandi/mailbridge/internal/pkg/goerror"
	"github.com/shandysiswandi/mailbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/mailbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/mailbridge/internal/pkg/router"
	"github.com/shandysiswandi/mailbridge/internal/pkg/uid"
	"github.com/shandysiswandi/mailbridge/internal/shared/event"
)

type HTTPEndpoint struct {
	uc        uc
	publisher messaging.Publisher
	uuid      uid.StringID
}

// Trigger publishes a trigger message for the mail route.
// @Summary Trigger mail route
// @Tags Mailer
// @Accept json
// @Produce json
// @Param request body TriggerRequest true "Trigger payload"
// @Success 202 {object} TriggerResponse
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 503 {object} router.errorResponse "Route consumer is not running"
// @Router /api/v1/mailer/trigger [post]
func (h *HTTPEndpoint) Trigger(r *router.Request) (any, error) {
	var req TriggerRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	ctx := r.Context()
	cID := instrument.GetCorrelationID(ctx)
	if cID == "" {
		cID = h.uuid.Generate()
	}

	res, err := h.publisher.Publish(ctx, event.MailerTriggerDestination, messaging.OutgoingMessage{
		Body: []byte(req.Body),
		Headers: messaging.NewHeaders(map[string]string{
			event.MailerTriggerHeaderTo:            req.To,
			event.MailerTriggerHeaderCorrelationID: cID,
		}),
	})
	if errors.Is(err, messaging.ErrDirectNoConsumer) {
		return nil, goerror.NewUnavailable("Mail route is not consuming", err)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish mailer trigger", "destination", event.MailerTriggerDestination, "error", err)
		return nil, goerror.NewServer(err)
	}

	return TriggerResponse{Destination: event.MailerTriggerDestination, MessageID: res.MessageID}, nil
}

// Notify sends content to an email address from the notification sender.
// @Summary Notify user
// @Tags Mailer
// @Accept json
// @Param request body NotifyRequest true "Notify payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mailer/notify [post]
func (h *HTTPEndpoint) Notify(r *router.Request) (any, error) {
	var req NotifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.NotifyUser(r.Context(), usecase.NotifyUserInput{
		Email:   req.Email,
		Content: req.Content,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}
