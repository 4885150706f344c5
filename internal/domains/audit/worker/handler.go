package worker

import (
	"context"
	"errors"

	"corpbooking/infras/kafka"
	"corpbooking/internal/domains/audit/service"
	bookingModel "corpbooking/internal/domains/booking/model"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// NewHandler stores every booking event consumed from Kafka.
// Malformed payloads are logged and committed so they cannot block the partition.
func NewHandler(svc service.Audit) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		event, err := kafka.DecodeKafkaMessage[bookingModel.BookingEvent](message)
		if err != nil {
			log.Error().Err(err).Int64("offset", message.Offset).Msg("skipping undecodable booking event")

			return nil
		}

		if err = svc.Record(ctx, event); err != nil {
			if errors.Is(err, service.ErrIncompleteEvent) {
				log.Error().Int64("offset", message.Offset).Msg("skipping incomplete booking event")

				return nil
			}

			return err
		}

		return nil
	}
}
