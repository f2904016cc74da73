package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
	"spotsavers/internal/utils"
)

// Wire DTOs. Dates travel as "2006-01-02" and clock times as "HH:MM";
// handlers translate them to the minute offsets the services work with.

type PublishSpaceRequest struct {
	LocationID int     `json:"location_id"`
	OwnerID    int     `json:"owner_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Price      float64 `json:"price"`
}

type BookingWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CreateBookingRequest struct {
	SpaceID        int            `json:"space_id"`
	SeekerID       int            `json:"seeker_id"`
	VehicleCompany string         `json:"vehicle_company"`
	VehicleModel   string         `json:"vehicle_model"`
	PlateNumber    string         `json:"plate_number"`
	CarColor       string         `json:"car_color"`
	Window         *BookingWindow `json:"window,omitempty"`
}

type OwnerDecisionRequest struct {
	OwnerID int `json:"owner_id"`
}

type CancelBookingRequest struct {
	SeekerID int `json:"seeker_id"`
}

type SettleBookingRequest struct {
	SeekerID        int `json:"seeker_id"`
	PaymentMethodID int `json:"payment_method_id"`
}

func (r *PublishSpaceRequest) toEntity() (*entities.PublishSpaceRequest, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD")
	}
	start, err := utils.ParseClock(r.StartTime)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	end, err := utils.ParseClock(r.EndTime)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return &entities.PublishSpaceRequest{
		LocationID:  r.LocationID,
		OwnerID:     r.OwnerID,
		Date:        date,
		StartMinute: start,
		EndMinute:   end,
		Price:       r.Price,
	}, nil
}

func (r *CreateBookingRequest) toEntity() (*entities.CreateBookingRequest, error) {
	req := &entities.CreateBookingRequest{
		SpaceID:        r.SpaceID,
		SeekerID:       r.SeekerID,
		VehicleCompany: r.VehicleCompany,
		VehicleModel:   r.VehicleModel,
		PlateNumber:    r.PlateNumber,
		CarColor:       r.CarColor,
	}
	if r.Window != nil {
		start, err := utils.ParseClock(r.Window.StartTime)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		end, err := utils.ParseClock(r.Window.EndTime)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		req.WindowStart, req.WindowEnd = start, end
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors to their HTTP status; anything unrecognized
// is a 500 with the detail kept server-side.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.HTTPStatus(), map[string]string{"error": appErr.Message})
		return
	}
	log.Printf("Internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
