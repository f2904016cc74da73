package db

import (
	"database/sql"
	"time"

	"spotsavers/internal/entities"
)

// Space booking states.
const (
	SpaceStateOpen     = "open"
	SpaceStateReserved = "reserved"
	SpaceStateExpired  = "expired"
)

// Booking states.
const (
	BookingStatePending   = "pending"
	BookingStateApproved  = "approved"
	BookingStateRejected  = "rejected"
	BookingStateSettled   = "settled"
	BookingStateCancelled = "cancelled"
)

// OfferCutoff keeps seekers from booking a slot about to end: a space is
// only offered while now + OfferCutoff is still before the slot end. The
// same window doubles as the grace period before a space turns expired.
const OfferCutoff = 2 * time.Hour

// PublishLeadDays is how many calendar days ahead a slot date must be,
// both when an owner publishes a space and when a seeker books it.
const PublishLeadDays = 2

type Space struct {
	ID           int
	LocationID   int
	OwnerID      int
	SlotDate     time.Time
	StartMinute  int
	EndMinute    int
	Price        float64
	BookingState string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slot rebuilds the value-type view of the space's time window.
func (s *Space) Slot() entities.TimeSlot {
	return entities.TimeSlot{Date: s.SlotDate, StartMinute: s.StartMinute, EndMinute: s.EndMinute}
}

// Offered reports whether the space may appear in seeker search results:
// not within the 2h cutoff of its slot end, and not held by an approved
// booking. Expired spaces fail the cutoff check on their own, but the
// state column is checked too in case the sweep already ran.
func (s *Space) Offered(now time.Time) bool {
	if !now.Add(OfferCutoff).Before(s.Slot().EndAt()) {
		return false
	}
	return s.BookingState != SpaceStateReserved && s.BookingState != SpaceStateExpired
}

// SpaceWithLocation joins in the display attributes the directory holds for
// the space's parking location.
type SpaceWithLocation struct {
	Space
	LocationName string
	Address      string
	City         string
}

type Booking struct {
	ID              int
	SpaceID         int
	SeekerID        int
	VehicleCompany  string
	VehicleModel    string
	PlateNumber     string
	CarColor        string
	StartMinute     int
	EndMinute       int
	State           string
	Amount          sql.NullFloat64
	PaymentMethodID sql.NullInt64
	Instruction     sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PaymentMethod struct {
	ID     int
	UserID int
	Cash   bool
	UpiID  sql.NullString
}

type Location struct {
	ID      int
	OwnerID int
	Name    string
	Address string
	City    string
	Lat     float64
	Long    float64
}

type User struct {
	ID    int
	Name  string
	Email string
	Phone string
	Type  string
}
