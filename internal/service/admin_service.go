package service

import (
	"spotsavers/internal/entities"
	"spotsavers/internal/repository"
)

// AdminService backs the protected /admin surface with unrestricted listings
// across all owners and seekers.
type AdminService struct {
	spaces   *repository.SpaceRepository
	bookings *repository.BookingRepository
}

func NewAdminService(spaces *repository.SpaceRepository, bookings *repository.BookingRepository) *AdminService {
	return &AdminService{spaces: spaces, bookings: bookings}
}

func (s *AdminService) ListSpaces(date, state string) ([]entities.SpaceResponse, error) {
	spaces, err := s.spaces.AdminListSpaces(date, state)
	if err != nil {
		return nil, err
	}
	responses := []entities.SpaceResponse{}
	for i := range spaces {
		resp := toSpaceResponse(&spaces[i].Space)
		resp.LocationName = spaces[i].LocationName
		resp.Address = spaces[i].Address
		resp.City = spaces[i].City
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *AdminService) ListBookings(state string) ([]entities.BookingResponse, error) {
	bookings, spaces, err := s.bookings.AdminListBookings(state)
	if err != nil {
		return nil, err
	}
	responses := []entities.BookingResponse{}
	for i := range bookings {
		responses = append(responses, *toBookingResponse(&bookings[i], &spaces[i]))
	}
	return responses, nil
}
