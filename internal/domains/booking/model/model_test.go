package model_test

import (
	"net/http"
	"testing"
	"time"

	"corpbooking/internal/domains/booking/model"
	"corpbooking/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, status := range model.Statuses {
		parsed, err := model.ParseStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := model.ParseStatus("cancelled")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestTransition(t *testing.T) {
	for _, from := range model.Statuses {
		for _, to := range model.Statuses {
			changed, err := model.Transition(from, to)
			require.NoError(t, err)
			assert.Equal(t, from != to, changed, "%s -> %s", from, to)
		}
	}

	_, err := model.Transition(model.StatusPending, "archived")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}

func TestStatus_Blocking(t *testing.T) {
	assert.True(t, model.StatusApproved.Blocking())
	assert.False(t, model.StatusPending.Blocking())
	assert.False(t, model.StatusRejected.Blocking())
}

func TestBooking_Ref(t *testing.T) {
	id := "v-1"
	empty := ""

	assert.Equal(t, model.ByID{ID: "v-1"}, model.Booking{ResourceID: &id, ResourceName: "Avanza"}.Ref())
	assert.Equal(t, model.ByName{Kind: model.ResourceVehicle, Name: "Avanza"},
		model.Booking{ResourceID: &empty, ResourceKind: model.ResourceVehicle, ResourceName: "Avanza"}.Ref())
	assert.NotEqual(t, model.ByID{ID: "x"}.LockKey(), model.ByName{Name: "x"}.LockKey())
}

func TestConflictError(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	err := error(&model.ConflictError{Conflicts: []model.Booking{{
		ResourceName: "Avanza",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
	}}})

	conflict, ok := model.AsConflict(err)
	require.True(t, ok)
	assert.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Contains(t, err.Error(), "Avanza (2024-01-01 10:00 - 2024-01-01 11:00)")
}
