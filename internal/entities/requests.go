package entities

import "time"

// PublishSpaceRequest is the typed input for publishing a space; identity
// is always explicit, never taken from ambient session state.
type PublishSpaceRequest struct {
	LocationID  int
	OwnerID     int
	Date        time.Time
	StartMinute int
	EndMinute   int
	Price       float64
}

// CreateBookingRequest carries a seeker's booking submission. A zero
// window means "the space's nominal slot".
type CreateBookingRequest struct {
	SpaceID        int
	SeekerID       int
	VehicleCompany string
	VehicleModel   string
	PlateNumber    string
	CarColor       string
	WindowStart    int
	WindowEnd      int
}
