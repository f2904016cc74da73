package service

import (
	"fmt"
	"time"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
	"spotsavers/internal/repository"
	"spotsavers/internal/utils"
)

// SpaceStore is the registry of accepted slots. CreateSpace is atomic with
// respect to the overlap check for the same location/date.
type SpaceStore interface {
	CreateSpace(space *db.Space) error
	GetSpaceByID(id int) (*db.Space, error)
	ListSpaces(filter repository.SpaceFilter) ([]db.SpaceWithLocation, error)
}

// DirectoryStore resolves external location/user ids to display attributes.
type DirectoryStore interface {
	GetLocation(id int) (*db.Location, error)
	GetUser(id int) (*db.User, error)
	ListLocations(ownerID int, city string) ([]entities.LocationResponse, error)
}

type SpaceService struct {
	spaces    SpaceStore
	directory DirectoryStore
	now       func() time.Time
}

func NewSpaceService(spaces SpaceStore, directory DirectoryStore) *SpaceService {
	return &SpaceService{spaces: spaces, directory: directory, now: time.Now}
}

// PublishSpace validates and registers a new space. The overlap check
// against previously accepted slots at the same location/date happens
// inside the store, atomically with the insert.
func (s *SpaceService) PublishSpace(req *entities.PublishSpaceRequest) (*entities.SpaceResponse, error) {
	if req.Price <= 0 {
		return nil, apperrors.Validation("price must be positive")
	}
	slot, err := entities.NewTimeSlot(req.Date, req.StartMinute, req.EndMinute)
	if err != nil {
		return nil, err
	}
	if err := checkLeadTime(slot.Date, s.now()); err != nil {
		return nil, err
	}

	location, err := s.directory.GetLocation(req.LocationID)
	if err != nil {
		return nil, err
	}
	if location.OwnerID != req.OwnerID {
		return nil, apperrors.Validation(fmt.Sprintf("location %d does not belong to owner %d", req.LocationID, req.OwnerID))
	}

	space := &db.Space{
		LocationID:  req.LocationID,
		OwnerID:     req.OwnerID,
		SlotDate:    slot.Date,
		StartMinute: slot.StartMinute,
		EndMinute:   slot.EndMinute,
		Price:       req.Price,
	}
	if err := s.spaces.CreateSpace(space); err != nil {
		return nil, err
	}

	resp := toSpaceResponse(space)
	resp.LocationName = location.Name
	resp.Address = location.Address
	resp.City = location.City
	return resp, nil
}

// SearchSpaces lists spaces a seeker may book right now: the optional
// location/owner/date/city refinements narrow the set in the store, then
// the availability filter removes reserved, expired and about-to-end
// spaces.
func (s *SpaceService) SearchSpaces(filter repository.SpaceFilter) ([]entities.SpaceResponse, error) {
	spaces, err := s.spaces.ListSpaces(filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	offered := []entities.SpaceResponse{}
	for i := range spaces {
		if !spaces[i].Offered(now) {
			continue
		}
		resp := toSpaceResponse(&spaces[i].Space)
		resp.LocationName = spaces[i].LocationName
		resp.Address = spaces[i].Address
		resp.City = spaces[i].City
		offered = append(offered, *resp)
	}
	return offered, nil
}

func (s *SpaceService) GetSpace(id int) (*entities.SpaceResponse, error) {
	space, err := s.spaces.GetSpaceByID(id)
	if err != nil {
		return nil, err
	}
	return toSpaceResponse(space), nil
}

func (s *SpaceService) ListLocations(ownerID int, city string) ([]entities.LocationResponse, error) {
	return s.directory.ListLocations(ownerID, city)
}

// checkLeadTime enforces the publish-ahead rule: a slot date must be at
// least PublishLeadDays calendar days in the future, both when a space is
// published and when it is booked.
func checkLeadTime(slotDate time.Time, now time.Time) error {
	minDate := entities.NormalizeDate(now).AddDate(0, 0, db.PublishLeadDays)
	if slotDate.Before(minDate) {
		return apperrors.Validation(fmt.Sprintf("slot date must be at least %d calendar days in the future", db.PublishLeadDays))
	}
	return nil
}

func toSpaceResponse(space *db.Space) *entities.SpaceResponse {
	return &entities.SpaceResponse{
		ID:           space.ID,
		LocationID:   space.LocationID,
		OwnerID:      space.OwnerID,
		Date:         space.SlotDate,
		StartMinute:  space.StartMinute,
		EndMinute:    space.EndMinute,
		StartTime:    utils.FormatClock(space.StartMinute),
		EndTime:      utils.FormatClock(space.EndMinute),
		Price:        space.Price,
		BookingState: space.BookingState,
		CreatedAt:    space.CreatedAt,
		UpdatedAt:    space.UpdatedAt,
	}
}
