package inbound

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/shandysiswandi/mailbridge/internal/pkg/config"
	"github.com/shandysiswandi/mailbridge/internal/pkg/goroutine"
	"github.com/shandysiswandi/mailbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/mailbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/mailbridge/internal/pkg/uid"
	"github.com/shandysiswandi/mailbridge/internal/shared/event"
)

const consumerReadyTimeout = 5 * time.Second

// RegisterMQConsumer starts the enabled consumers on the goroutine manager.
// For drivers that implement messaging.ConsumerWaiter it returns only once
// each consumer is attached, so producers started afterwards find it.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) error {
	handler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.mailer.consumer_names")
	concurrency := max(cfg.GetInt("modules.mailer.consumer_concurrency"), 1)

	consumers := []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.MailerTriggerConsumerRoute,
			topic:   event.MailerTriggerDestination,
			handler: handler.TriggerRoute,
		},
	}

	for _, c := range consumers {
		if !slices.Contains(enabled, c.name) {
			continue
		}

		started := routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(pCtx, "running job for handling consumer", "consumer", c.name, "topic", c.topic)
			return messaging.IgnoreCanceled(consumer.Consume(pCtx,
				c.topic,
				c.handler,
				messaging.WithQueueGroup(c.name),
				messaging.WithGroup(c.name),
				messaging.WithSubscription(c.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(concurrency),
				messaging.WithMaxInFlight(concurrency),
			))
		})
		if !started {
			return fmt.Errorf("mailer: consumer %s was not started", c.name)
		}

		if w, ok := consumer.(messaging.ConsumerWaiter); ok {
			wCtx, cancel := context.WithTimeout(ctx, consumerReadyTimeout)
			err := w.WaitConsumer(wCtx, c.topic)
			cancel()
			if err != nil {
				return fmt.Errorf("mailer: consumer %s not ready: %w", c.name, err)
			}
		}
	}

	return nil
}
