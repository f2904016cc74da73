package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spotsavers/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTimeSlotNormalizesDate(t *testing.T) {
	noisy := time.Date(2026, 3, 5, 14, 22, 31, 0, time.UTC)
	slot, err := NewTimeSlot(noisy, 600, 720)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 5), slot.Date)
	assert.Equal(t, 120, slot.DurationMinutes())
}

func TestNewTimeSlotRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name       string
		date       time.Time
		start, end int
	}{
		{"zero date", time.Time{}, 600, 720},
		{"negative start", date(2026, 3, 5), -10, 720},
		{"end past midnight", date(2026, 3, 5), 600, MinutesPerDay + 1},
		{"zero duration", date(2026, 3, 5), 600, 600},
		{"start after end", date(2026, 3, 5), 720, 600},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTimeSlot(tc.date, tc.start, tc.end)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestOverlaps(t *testing.T) {
	day := date(2026, 3, 5)
	base := TimeSlot{Date: day, StartMinute: 600, EndMinute: 720}

	cases := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", TimeSlot{Date: day, StartMinute: 600, EndMinute: 720}, true},
		{"partial overlap", TimeSlot{Date: day, StartMinute: 700, EndMinute: 840}, true},
		{"contained", TimeSlot{Date: day, StartMinute: 630, EndMinute: 690}, true},
		{"touching after", TimeSlot{Date: day, StartMinute: 720, EndMinute: 840}, false},
		{"touching before", TimeSlot{Date: day, StartMinute: 480, EndMinute: 600}, false},
		{"disjoint", TimeSlot{Date: day, StartMinute: 60, EndMinute: 120}, false},
		{"same time next day", TimeSlot{Date: date(2026, 3, 6), StartMinute: 600, EndMinute: 720}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestStartAtEndAt(t *testing.T) {
	slot := TimeSlot{Date: date(2026, 3, 5), StartMinute: 600, EndMinute: 720}
	assert.Equal(t, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), slot.StartAt())
	assert.Equal(t, time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC), slot.EndAt())
}
