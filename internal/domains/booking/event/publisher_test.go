package event_test

import (
	"context"
	"errors"
	"testing"

	"corpbooking/config"
	"corpbooking/infras/kafka"
	kafkaMocks "corpbooking/infras/kafka/mocks"
	"corpbooking/infras/otel/mocks"
	"corpbooking/internal/domains/booking/event"
	"corpbooking/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublish(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	bookingEvent := model.BookingEvent{EventID: "e-1", BookingID: "b-1", Action: model.EventCreated}

	tests := []struct {
		name      string
		sendErr   error
		expectErr bool
	}{
		{name: "sent"},
		{name: "broker down", sendErr: errors.New("dial tcp: connection refused"), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)

			client.EXPECT().
				SendMessages(gomock.Any(), "booking-events", kafka.Message{Key: "b-1", Value: bookingEvent}).
				Return(tt.sendErr)

			err := event.New(client, cfg, mocks.NewOtel()).Publish(context.Background(), bookingEvent)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
