package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/dinebite/internal/notification/usecase"
	"github.com/shandysiswandi/dinebite/internal/pkg/config"
	"github.com/shandysiswandi/dinebite/internal/pkg/goroutine"
	"github.com/shandysiswandi/dinebite/internal/pkg/instrument"
	"github.com/shandysiswandi/dinebite/internal/pkg/messaging"
	"github.com/shandysiswandi/dinebite/internal/pkg/uid"
	"github.com/shandysiswandi/dinebite/internal/shared/event"
)

type uc interface {
	ConsumePasswordResetOTP(ctx context.Context, in usecase.ConsumePasswordResetOTPInput) error
}

// RegisterMQConsumer starts every consumer listed in
// modules.notification.consumer_names. They stop with ctx.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.consumer_concurrency")

	consumers := []struct {
		name    string
		topic   string // destination where publisher sent message
		group   string // kafka group, nsq channel, nats queue group
		handler messaging.Handler
	}{
		{
			name:    event.PasswordResetOTPIssuedConsumerNotification,
			topic:   event.PasswordResetOTPIssuedDestination,
			group:   event.PasswordResetOTPIssuedConsumerNotification,
			handler: mqHandler.PasswordResetOTPNotification,
		},
	}

	for _, consumer := range consumers {
		if !slices.Contains(enableConsumerNames, consumer.name) {
			continue
		}

		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(pCtx, "Running job for handling consumer", "consumer", consumer.name)
			return messenger.Consume(pCtx,
				consumer.topic,
				consumer.handler,
				messaging.WithGroup(consumer.group),
				messaging.WithConcurrency(concurrency),
			)
		})
	}
}
