package inbound

import (
	"context"

	"github.com/shandysiswandi/mailbridge/internal/mailer/usecase"
)

type uc interface {
	Route(ctx context.Context, in usecase.RouteInput)
	NotifyUser(ctx context.Context, in usecase.NotifyUserInput) error
}
