package conflict_test

import (
	"testing"
	"time"

	"corpbooking/internal/domains/booking/conflict"
	"corpbooking/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func ptr(value string) *string {
	return &value
}

func booking(id string, status model.Status, start, end time.Time) model.Booking {
	return model.Booking{
		ID:           id,
		ResourceKind: model.ResourceVehicle,
		ResourceName: "Avanza",
		Status:       status,
		StartTime:    start,
		EndTime:      end,
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	intervals := [][2]time.Time{
		{at(9, 0), at(10, 0)},
		{at(10, 0), at(11, 0)},
		{at(10, 30), at(10, 45)},
		{at(11, 1), at(12, 0)},
		{at(8, 0), at(13, 0)},
	}

	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t,
				conflict.Overlaps(a[0], a[1], b[0], b[1]),
				conflict.Overlaps(b[0], b[1], a[0], a[1]),
				"a=%v b=%v", a, b,
			)
		}
	}
}

func TestDetect(t *testing.T) {
	byName := model.ByName{Kind: model.ResourceVehicle, Name: "Avanza"}

	tests := []struct {
		name      string
		ref       model.ResourceRef
		start     time.Time
		end       time.Time
		existing  []model.Booking
		want      bool
		wantIDs   []string
		wantError error
	}{
		{
			name:     "touching boundary conflicts",
			ref:      byName,
			start:    at(11, 0),
			end:      at(12, 0),
			existing: []model.Booking{booking("a", model.StatusApproved, at(10, 0), at(11, 0))},
			want:     true,
			wantIDs:  []string{"a"},
		},
		{
			name:     "one minute gap does not conflict",
			ref:      byName,
			start:    at(11, 1),
			end:      at(12, 0),
			existing: []model.Booking{booking("a", model.StatusApproved, at(10, 0), at(11, 0))},
		},
		{
			name:  "pending and rejected never block",
			ref:   byName,
			start: at(10, 0),
			end:   at(11, 0),
			existing: []model.Booking{
				booking("p", model.StatusPending, at(10, 0), at(11, 0)),
				booking("r", model.StatusRejected, at(10, 0), at(11, 0)),
			},
		},
		{
			name:  "returns every overlapping approved booking",
			ref:   byName,
			start: at(9, 0),
			end:   at(15, 0),
			existing: []model.Booking{
				booking("a", model.StatusApproved, at(8, 0), at(9, 30)),
				booking("b", model.StatusApproved, at(14, 0), at(16, 0)),
				booking("c", model.StatusApproved, at(16, 0), at(17, 0)),
			},
			want:    true,
			wantIDs: []string{"a", "b"},
		},
		{
			name:  "same name in another kind does not match",
			ref:   model.ByName{Kind: model.ResourceMeetingRoom, Name: "Avanza"},
			start: at(10, 0),
			end:   at(11, 0),
			existing: []model.Booking{
				booking("a", model.StatusApproved, at(10, 0), at(11, 0)),
			},
		},
		{
			name:  "empty kind matches the name in any kind",
			ref:   model.ByName{Name: "Avanza"},
			start: at(10, 0),
			end:   at(11, 0),
			existing: []model.Booking{
				booking("a", model.StatusApproved, at(10, 0), at(11, 0)),
			},
			want:    true,
			wantIDs: []string{"a"},
		},
		{
			name:      "inverted range",
			ref:       byName,
			start:     at(12, 0),
			end:       at(11, 0),
			wantError: model.ErrInvalidRange,
		},
		{
			name:      "empty range",
			ref:       byName,
			start:     at(12, 0),
			end:       at(12, 0),
			wantError: model.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := conflict.Detect(tt.ref, tt.start, tt.end, tt.existing, "")
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.HasConflict)

			ids := []string{}
			for _, c := range result.Conflicts {
				ids = append(ids, c.ID)
			}

			if tt.wantIDs == nil {
				tt.wantIDs = []string{}
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDetect_ResourceKeyPaths(t *testing.T) {
	const avanzaID = "7b0e2a6c-4f3e-4a1e-9d56-5d1c1f0c0a11"

	legacy := booking("legacy", model.StatusApproved, at(10, 0), at(11, 0))
	linked := booking("linked", model.StatusApproved, at(10, 0), at(11, 0))
	linked.ResourceID = ptr(avanzaID)

	t.Run("name keyed record blocks name keyed candidate", func(t *testing.T) {
		result, err := conflict.Detect(model.ByName{Kind: model.ResourceVehicle, Name: "Avanza"}, at(10, 30), at(12, 0), []model.Booking{legacy}, "")
		require.NoError(t, err)
		assert.True(t, result.HasConflict)
	})

	t.Run("name keyed record does not block id keyed candidate", func(t *testing.T) {
		result, err := conflict.Detect(model.ByID{ID: avanzaID}, at(10, 30), at(12, 0), []model.Booking{legacy}, "")
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
	})

	t.Run("id keyed record blocks id keyed candidate regardless of name", func(t *testing.T) {
		renamed := linked
		renamed.ResourceName = "Avanza B 1234 XY"

		result, err := conflict.Detect(model.ByID{ID: avanzaID}, at(10, 30), at(12, 0), []model.Booking{renamed}, "")
		require.NoError(t, err)
		assert.True(t, result.HasConflict)
	})

	t.Run("other id does not block", func(t *testing.T) {
		result, err := conflict.Detect(model.ByID{ID: "another"}, at(10, 30), at(12, 0), []model.Booking{linked}, "")
		require.NoError(t, err)
		assert.False(t, result.HasConflict)
	})
}

func TestDetect_ExcludeSelf(t *testing.T) {
	self := booking("self", model.StatusApproved, at(10, 0), at(11, 0))

	result, err := conflict.Detect(self.Ref(), self.StartTime, self.EndTime, []model.Booking{self}, "self")
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
}

func TestDetect_RemovingPendingChangesNothing(t *testing.T) {
	approved := booking("a", model.StatusApproved, at(10, 0), at(11, 0))
	pending := booking("p", model.StatusPending, at(12, 0), at(13, 0))
	ref := approved.Ref()

	for _, window := range [][2]time.Time{{at(10, 30), at(12, 30)}, {at(12, 0), at(12, 30)}} {
		with, err := conflict.Detect(ref, window[0], window[1], []model.Booking{approved, pending}, "")
		require.NoError(t, err)

		without, err := conflict.Detect(ref, window[0], window[1], []model.Booking{approved}, "")
		require.NoError(t, err)

		assert.Equal(t, without, with)
	}
}
