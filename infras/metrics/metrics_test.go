package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"corpbooking/infras/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesBookingMetrics(t *testing.T) {
	metrics.IncBookingCreated("vehicle")
	metrics.IncBookingConflict("create")
	metrics.IncBookingTransition("pending", "approved")
	metrics.IncEventPublishFailure()
	metrics.ObserveHTTPRequest(http.MethodPost, "/v1/bookings", http.StatusCreated, 20*time.Millisecond)

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, string(body), `corpbooking_booking_created_total{resource_kind="vehicle"}`)
	assert.Contains(t, string(body), `corpbooking_booking_conflict_total{operation="create"}`)
	assert.Contains(t, string(body), `corpbooking_booking_status_transition_total{from="pending",to="approved"}`)
	assert.Contains(t, string(body), `corpbooking_http_request_duration_seconds_count{method="POST",route="/v1/bookings",status="201"}`)
}
