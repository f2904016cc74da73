package entities

import "time"

type SpaceResponse struct {
	ID           int       `json:"id"`
	LocationID   int       `json:"location_id"`
	OwnerID      int       `json:"owner_id"`
	Date         time.Time `json:"date"`
	StartMinute  int       `json:"start"`
	EndMinute    int       `json:"end"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Price        float64   `json:"price"`
	BookingState string    `json:"booking_state"`
	LocationName string    `json:"location_name,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
