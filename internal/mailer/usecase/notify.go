package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/mailbridge/internal/mailer/entity"
	"github.com/shandysiswandi/mailbridge/internal/pkg/goerror"
)

// NotifyUserInput is handed to the transport as given. Email is only checked
// for line breaks since it is rendered into the To header.
type NotifyUserInput struct {
	Email   string `json:"email" validate:"singleline"`
	Content string `json:"content"`
}

// NotifyUser sends content to the given address from the notification sender.
// The transport error is returned as is, including mail.ErrNoRecipients for
// an empty address.
func (s *Usecase) NotifyUser(ctx context.Context, in NotifyUserInput) error {
	ctx, span := s.startSpan(ctx, "NotifyUser")
	defer span.End()

	if s.validator != nil {
		if err := s.validator.Validate(in); err != nil {
			slog.WarnContext(ctx, "invalid notify user input", "error", err)
			return goerror.NewInvalidInput(err)
		}
	}

	msg := entity.OutboundMessage{
		To:      in.Email,
		From:    s.notifyFrom,
		Subject: s.notifySubject,
		Body:    in.Content,
	}

	if err := s.repoMail.Send(ctx, msg.ToMail()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "failed to send notify user mail", "to", in.Email, "error", err)
		return err
	}

	return nil
}
