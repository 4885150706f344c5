package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestHandleWithRetry(t *testing.T) {
	msg := kafkaGo.Message{Topic: "booking-events", Key: []byte("b1"), Offset: 7}
	errTransient := errors.New("database is down")

	tests := []struct {
		name      string
		failures  int
		cancel    bool
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "first attempt succeeds",
			wantCalls: 1,
		},
		{
			name:      "same message redelivered after a failure",
			failures:  1,
			wantCalls: 2,
		},
		{
			name:      "keeps retrying past several failures",
			failures:  4,
			wantCalls: 5,
		},
		{
			name:      "gives up once the context is done",
			failures:  1000,
			cancel:    true,
			wantCalls: 3,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			calls := 0
			handler := func(_ context.Context, got kafkaGo.Message) error {
				calls++

				assert.Equal(t, msg.Offset, got.Offset)

				if tt.cancel && calls == tt.wantCalls {
					cancel()
				}

				if calls <= tt.failures {
					return errTransient
				}

				return nil
			}

			err := handleWithRetry(ctx, msg, handler, backoff.NewConstantBackOff(time.Millisecond))

			assert.Equal(t, tt.wantCalls, calls)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestNewBackOff_Bounded(t *testing.T) {
	b := newBackOff()

	for range 50 {
		wait := b.NextBackOff()
		assert.NotEqual(t, backoff.Stop, wait)
		assert.LessOrEqual(t, wait, retryMaxInterval+retryMaxInterval/2)
	}
}

func TestSleep_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, sleep(ctx, time.Hour))
	assert.True(t, sleep(context.Background(), time.Millisecond))
}
