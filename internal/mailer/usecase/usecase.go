package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/mailbridge/internal/pkg/config"
	"github.com/shandysiswandi/mailbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/mailbridge/internal/pkg/mail"
	"github.com/shandysiswandi/mailbridge/internal/pkg/uid"
	"github.com/shandysiswandi/mailbridge/internal/pkg/validator"
	"github.com/shandysiswandi/mailbridge/internal/shared/event"
)

const (
	DefaultRouteSubject  = "Hello, world!"
	DefaultRouteTo       = "user@example.com"
	DefaultRouteFrom     = "mailbridge@localhost"
	DefaultNotifyFrom    = "person@example.com"
	DefaultNotifySubject = "Mail from Notifications!"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	uuid      uid.StringID
	validator validator.Validator
	repoMail  repoMail
	ins       instrument.Instrumentation

	routeSubject  string
	routeTo       string
	routeFrom     string
	notifyFrom    string
	notifySubject string
	routeFailures metric.Int64Counter
}

type Dependency struct {
	Config     config.Config
	UUID       uid.StringID
	Validator  validator.Validator
	RepoMail   repoMail
	Instrument instrument.Instrumentation
}

func NewMailer(dep Dependency) *Usecase {
	s := &Usecase{
		uuid:          dep.UUID,
		validator:     dep.Validator,
		repoMail:      dep.RepoMail,
		ins:           dep.Instrument,
		routeSubject:  DefaultRouteSubject,
		routeTo:       DefaultRouteTo,
		routeFrom:     DefaultRouteFrom,
		notifyFrom:    DefaultNotifyFrom,
		notifySubject: DefaultNotifySubject,
	}

	if s.ins == nil {
		s.ins = instrument.NewNoop()
	}
	if s.uuid == nil {
		s.uuid = uid.NewRandomUUID()
	}

	if dep.Config != nil {
		s.routeSubject = config.StringOr(dep.Config, "modules.mailer.route.subject", DefaultRouteSubject)
		s.routeTo = config.StringOr(dep.Config, "modules.mailer.route.to", DefaultRouteTo)
		s.routeFrom = config.StringOr(dep.Config, "modules.mailer.route.from", DefaultRouteFrom)
		s.notifyFrom = config.StringOr(dep.Config, "modules.mailer.notify.from", DefaultNotifyFrom)
		s.notifySubject = config.StringOr(dep.Config, "modules.mailer.notify.subject", DefaultNotifySubject)
	}

	counter, err := s.ins.Meter("mailer.usecase").Int64Counter("mailer.route.failures",
		metric.WithDescription("Number of route deliveries that failed and were swallowed"))
	if err != nil {
		slog.Error("failed to create route failure counter", "error", err)
	}
	s.routeFailures = counter

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mailer.usecase").Start(ctx, name)
}

func routeEndpoint(endpoint string) string {
	if endpoint == "" {
		return event.MailerTriggerDestination
	}
	return endpoint
}
