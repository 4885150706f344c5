package worker

import (
	"context"
	"fmt"

	"corpbooking/config"
	"corpbooking/infras/kafka"
	"corpbooking/internal/domains/audit/service"

	"github.com/rs/zerolog/log"
)

const defaultConsumerGroup = "corpbooking-audit"

// Worker consumes booking events into the audit trail until its context ends.
type Worker struct {
	cfg     *config.Config
	client  kafka.Client
	handler kafka.Handler
}

func New(cfg *config.Config, client kafka.Client, svc service.Audit) *Worker {
	return &Worker{
		cfg:     cfg,
		client:  client,
		handler: NewHandler(svc),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	group := w.cfg.Kafka.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}

	topic := w.cfg.Kafka.Topic.BookingEvents

	log.Info().Str("topic", topic).Str("group", group).Msg("Starting booking audit worker.")

	defer func() {
		if err := w.client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka client")
		}
	}()

	if err := w.client.Consume(ctx, group, topic, w.handler); err != nil {
		return fmt.Errorf("failed to consume booking events: %w", err)
	}

	log.Info().Msg("Booking audit worker stopped.")

	return nil
}
