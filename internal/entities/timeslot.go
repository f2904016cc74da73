package entities

import (
	"fmt"
	"time"

	apperrors "spotsavers/internal/errors"
)

// MinutesPerDay is the upper bound for a slot's end minute (24:00).
const MinutesPerDay = 24 * 60

// TimeSlot is one calendar day plus a start/end pair expressed in minutes
// since midnight. The date is time-zone naive and normalized to midnight
// UTC; it is interpreted in the location's local time.
type TimeSlot struct {
	Date        time.Time `json:"date"`
	StartMinute int       `json:"start"`
	EndMinute   int       `json:"end"`
}

// NewTimeSlot validates and builds a slot. Zero or negative duration and
// out-of-range minutes are rejected here so no invalid slot exists anywhere
// downstream.
func NewTimeSlot(date time.Time, startMinute, endMinute int) (TimeSlot, error) {
	if date.IsZero() {
		return TimeSlot{}, apperrors.Validation("slot date is required")
	}
	if startMinute < 0 || endMinute > MinutesPerDay {
		return TimeSlot{}, apperrors.Validation(fmt.Sprintf("slot minutes must be within 0..%d, got %d..%d", MinutesPerDay, startMinute, endMinute))
	}
	if startMinute >= endMinute {
		return TimeSlot{}, apperrors.Validation("slot start time must be before end time")
	}
	return TimeSlot{Date: NormalizeDate(date), StartMinute: startMinute, EndMinute: endMinute}, nil
}

// NormalizeDate truncates a timestamp to its calendar day, midnight UTC.
func NormalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// DurationMinutes is the nominal length of the slot.
func (t TimeSlot) DurationMinutes() int {
	return t.EndMinute - t.StartMinute
}

// Overlaps reports whether the half-open intervals [start,end) of two slots
// on the same date intersect. Slots on different dates never overlap, and
// back-to-back slots (a.end == b.start) are allowed.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	if !t.Date.Equal(other.Date) {
		return false
	}
	return !(t.EndMinute <= other.StartMinute || other.EndMinute <= t.StartMinute)
}

// StartAt is the absolute instant the slot begins.
func (t TimeSlot) StartAt() time.Time {
	return t.Date.Add(time.Duration(t.StartMinute) * time.Minute)
}

// EndAt is the absolute instant the slot ends, used for expiry math.
func (t TimeSlot) EndAt() time.Time {
	return t.Date.Add(time.Duration(t.EndMinute) * time.Minute)
}
