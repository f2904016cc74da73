package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpaceOffered(t *testing.T) {
	slotDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	// Slot runs 10:00 to 12:00 on 2026-03-05.
	space := Space{SlotDate: slotDate, StartMinute: 600, EndMinute: 720, BookingState: SpaceStateOpen}

	cases := []struct {
		name  string
		now   time.Time
		state string
		want  bool
	}{
		{"well before slot", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), SpaceStateOpen, true},
		{"just outside cutoff", time.Date(2026, 3, 5, 9, 59, 0, 0, time.UTC), SpaceStateOpen, true},
		{"exactly at cutoff", time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), SpaceStateOpen, false},
		{"inside cutoff", time.Date(2026, 3, 5, 11, 0, 0, 0, time.UTC), SpaceStateOpen, false},
		{"after slot end", time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC), SpaceStateOpen, false},
		{"reserved", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), SpaceStateReserved, false},
		{"expired", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC), SpaceStateExpired, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := space
			s.BookingState = tc.state
			assert.Equal(t, tc.want, s.Offered(tc.now))
		})
	}
}

func TestSpaceSlot(t *testing.T) {
	space := Space{
		SlotDate:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		StartMinute: 600,
		EndMinute:   720,
	}
	slot := space.Slot()
	assert.Equal(t, space.SlotDate, slot.Date)
	assert.Equal(t, 120, slot.DurationMinutes())
}
