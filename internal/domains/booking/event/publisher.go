package event

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"corpbooking/config"
	"corpbooking/infras/kafka"
	"corpbooking/infras/otel"
	"corpbooking/internal/domains/booking/model"
	"corpbooking/shared/constant"
)

type Publisher interface {
	Publish(ctx context.Context, event model.BookingEvent) (err error)
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topic.BookingEvents,
		otel:   otel,
	}
}

// Publish keys events by booking id so one booking's events share a partition.
// Publishes run concurrently, so delivery order is not guaranteed; the audit
// history sorts by occurred_at instead.
func (p *kafkaPublisher) Publish(ctx context.Context, event model.BookingEvent) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"booking_id": event.BookingID,
		"action":     string(event.Action),
	})

	if err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: event.BookingID, Value: event}); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	return nil
}
