package repository_test

import (
	"testing"
	"time"

	"corpbooking/internal/domains/booking/model"
	"corpbooking/internal/domains/booking/repository"

	"github.com/stretchr/testify/assert"
)

func TestBlockingFilter(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name      string
		ref       model.ResourceRef
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "by id",
			ref:       model.ByID{ID: "v-1"},
			wantWhere: "(bookings.status = :status AND bookings.start_time <= :window_end AND bookings.end_time >= :window_start AND bookings.resource_id = :resource_id)",
			wantArgs:  map[string]any{"status": "approved", "window_end": end, "window_start": start, "resource_id": "v-1"},
		},
		{
			name:      "by name and kind",
			ref:       model.ByName{Kind: model.ResourceMeetingRoom, Name: "Ruang Rapat 1"},
			wantWhere: "(bookings.status = :status AND bookings.start_time <= :window_end AND bookings.end_time >= :window_start AND bookings.resource_name = :resource_name AND bookings.resource_kind = :resource_kind)",
			wantArgs: map[string]any{
				"status": "approved", "window_end": end, "window_start": start,
				"resource_name": "Ruang Rapat 1", "resource_kind": "meeting_room",
			},
		},
		{
			name:      "by name in any kind",
			ref:       model.ByName{Name: "Avanza"},
			wantWhere: "(bookings.status = :status AND bookings.start_time <= :window_end AND bookings.end_time >= :window_start AND bookings.resource_name = :resource_name)",
			wantArgs:  map[string]any{"status": "approved", "window_end": end, "window_start": start, "resource_name": "Avanza"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := repository.BlockingFilter(tt.ref, start, end)
			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
