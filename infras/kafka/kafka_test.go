package kafka_test

import (
	"testing"

	"corpbooking/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	BookingID string `json:"booking_id"`
	Action    string `json:"action"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "b-1", Value: event{BookingID: "b-1", Action: "created"}}

	encoded, err := message.ToKafkaMessage("booking-events")
	require.NoError(t, err)
	assert.Equal(t, "booking-events", encoded.Topic)
	assert.Equal(t, []byte("b-1"), encoded.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","action":"created"}`, string(encoded.Value))

	decoded, err := kafka.DecodeKafkaMessage[event](encoded)
	require.NoError(t, err)
	assert.Equal(t, event{BookingID: "b-1", Action: "created"}, decoded)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage("t")
	assert.Error(t, err)
}

func TestDecodeKafkaMessage_Invalid(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[event](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}
