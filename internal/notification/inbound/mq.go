package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/gobudget/internal/pkg/config"
	"github.com/shandysiswandi/gobudget/internal/pkg/goroutine"
	"github.com/shandysiswandi/gobudget/internal/pkg/instrument"
	"github.com/shandysiswandi/gobudget/internal/pkg/messaging"
	"github.com/shandysiswandi/gobudget/internal/pkg/uid"
	"github.com/shandysiswandi/gobudget/internal/shared/event"
)

const defaultConsumerConcurrency = 4

// RegisterMQConsumer starts the consumers enabled under
// modules.notification.consumer_names. An empty list enables all of them.
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
	if concurrency <= 0 {
		concurrency = defaultConsumerConcurrency
	}

	var consumers = []struct {
		name       string
		topic      string // destination where publisher sent message
		queueGroup string
		handler    messaging.Handler
	}{
		{
			name:       event.OTPRequestedDestinationConsumerNotification,
			topic:      event.OTPRequestedDestination,
			queueGroup: event.OTPRequestedDestinationConsumerNotification,
			handler:    mqHandler.OTPRequestedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && !slices.Contains(enableConsumerNames, consumer.name) {
			slog.InfoContext(ctx, "consumer disabled by config", "consumer", consumer.name)
			continue
		}

		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
			return messenger.Consume(pCtx,
				consumer.topic,
				consumer.handler,
				messaging.WithQueueGroup(consumer.queueGroup),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(concurrency),
			)
		})
	}
}
