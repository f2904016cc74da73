package entities

import "time"

type BookingResponse struct {
	ID             int       `json:"id"`
	SpaceID        int       `json:"space_id"`
	SeekerID       int       `json:"seeker_id"`
	VehicleCompany string    `json:"vehicle_company"`
	VehicleModel   string    `json:"vehicle_model"`
	PlateNumber    string    `json:"plate_number"`
	CarColor       string    `json:"car_color"`
	StartMinute    int       `json:"window_start"`
	EndMinute      int       `json:"window_end"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Populated once the booking is settled.
	Settlement *SettlementResponse `json:"settlement,omitempty"`

	// Space summary for list views.
	SpaceDate      *time.Time `json:"space_date,omitempty"`
	SpaceStartTime string     `json:"space_start_time,omitempty"`
	SpaceEndTime   string     `json:"space_end_time,omitempty"`
	LocationName   string     `json:"location_name,omitempty"`
	City           string     `json:"city,omitempty"`
}

type SettlementResponse struct {
	Amount      float64 `json:"amount"`
	Instruction string  `json:"instruction"`
}
