package service

import (
	"fmt"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
	"spotsavers/internal/repository"
)

// Hand-rolled stubs for the store interfaces. Each stub keeps its rows in a
// map and records mutating calls so tests can assert on them.

type stubSpaceStore struct {
	spaces    map[int]*db.Space
	listed    []db.SpaceWithLocation
	createErr error
	created   []*db.Space
}

func newStubSpaceStore(spaces ...*db.Space) *stubSpaceStore {
	s := &stubSpaceStore{spaces: map[int]*db.Space{}}
	for _, sp := range spaces {
		s.spaces[sp.ID] = sp
	}
	return s
}

func (s *stubSpaceStore) CreateSpace(space *db.Space) error {
	if s.createErr != nil {
		return s.createErr
	}
	space.ID = len(s.spaces) + 1
	space.BookingState = db.SpaceStateOpen
	s.spaces[space.ID] = space
	s.created = append(s.created, space)
	return nil
}

func (s *stubSpaceStore) GetSpaceByID(id int) (*db.Space, error) {
	space, ok := s.spaces[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("space %d not found", id))
	}
	return space, nil
}

func (s *stubSpaceStore) ListSpaces(repository.SpaceFilter) ([]db.SpaceWithLocation, error) {
	return s.listed, nil
}

type stubDirectoryStore struct {
	locations map[int]*db.Location
	users     map[int]*db.User
}

func newStubDirectoryStore() *stubDirectoryStore {
	return &stubDirectoryStore{
		locations: map[int]*db.Location{
			1: {ID: 1, OwnerID: 10, Name: "Central Parking", Address: "12 MG Road", City: "Pune"},
		},
		users: map[int]*db.User{
			7:  {ID: 7, Name: "Asha", Email: "asha@example.com", Phone: "+911234567890", Type: "seeker"},
			10: {ID: 10, Name: "Ravi", Email: "ravi@example.com", Phone: "+919876543210", Type: "owner"},
		},
	}
}

func (s *stubDirectoryStore) GetLocation(id int) (*db.Location, error) {
	location, ok := s.locations[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("location %d not found", id))
	}
	return location, nil
}

func (s *stubDirectoryStore) GetUser(id int) (*db.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("user %d not found", id))
	}
	return user, nil
}

func (s *stubDirectoryStore) ListLocations(ownerID int, city string) ([]entities.LocationResponse, error) {
	responses := []entities.LocationResponse{}
	for _, l := range s.locations {
		responses = append(responses, entities.LocationResponse{
			ID: l.ID, OwnerID: l.OwnerID, Name: l.Name, Address: l.Address, City: l.City,
		})
	}
	return responses, nil
}

type stubBookingStore struct {
	bookings map[int]*db.Booking

	approveRejected []int
	approveErr      error
	rejectApplied   bool
	cancelApplied   bool
	settleApplied   bool
	settleRaced     *db.Booking

	settledWith struct {
		bookingID, methodID int
		amount              float64
		instruction         string
	}
	settleCalls int
}

func newStubBookingStore(bookings ...*db.Booking) *stubBookingStore {
	s := &stubBookingStore{
		bookings:      map[int]*db.Booking{},
		rejectApplied: true,
		cancelApplied: true,
		settleApplied: true,
	}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

func (s *stubBookingStore) CreateBooking(booking *db.Booking) error {
	booking.ID = len(s.bookings) + 1
	booking.State = db.BookingStatePending
	s.bookings[booking.ID] = booking
	return nil
}

func (s *stubBookingStore) GetBookingByID(id int) (*db.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("booking %d not found", id))
	}
	return booking, nil
}

func (s *stubBookingStore) ApproveBooking(bookingID, spaceID int) ([]int, error) {
	if s.approveErr != nil {
		return nil, s.approveErr
	}
	return s.approveRejected, nil
}

func (s *stubBookingStore) RejectBooking(bookingID int) (bool, error) {
	return s.rejectApplied, nil
}

func (s *stubBookingStore) CancelBooking(bookingID, spaceID int) (bool, error) {
	return s.cancelApplied, nil
}

func (s *stubBookingStore) SettleBooking(bookingID, paymentMethodID int, amount float64, instruction string) (bool, error) {
	s.settleCalls++
	s.settledWith.bookingID = bookingID
	s.settledWith.methodID = paymentMethodID
	s.settledWith.amount = amount
	s.settledWith.instruction = instruction
	if !s.settleApplied && s.settleRaced != nil {
		s.bookings[bookingID] = s.settleRaced
	}
	return s.settleApplied, nil
}

func (s *stubBookingStore) ListBookings(seekerID, ownerID int) ([]db.Booking, []db.SpaceWithLocation, error) {
	return nil, nil, nil
}

type stubPaymentMethodStore struct {
	methods map[int]*db.PaymentMethod
}

func newStubPaymentMethodStore(methods ...*db.PaymentMethod) *stubPaymentMethodStore {
	s := &stubPaymentMethodStore{methods: map[int]*db.PaymentMethod{}}
	for _, m := range methods {
		s.methods[m.ID] = m
	}
	return s
}

func (s *stubPaymentMethodStore) GetPaymentMethod(id int) (*db.PaymentMethod, error) {
	method, ok := s.methods[id]
	if !ok {
		return nil, apperrors.NoPaymentMethod(fmt.Sprintf("payment method %d not found", id))
	}
	return method, nil
}

func (s *stubPaymentMethodStore) ListByUser(userID int) ([]db.PaymentMethod, error) {
	var methods []db.PaymentMethod
	for _, m := range s.methods {
		if m.UserID == userID {
			methods = append(methods, *m)
		}
	}
	return methods, nil
}

type stubNotifier struct {
	statuses []string
}

func (s *stubNotifier) NotifyBookingStatus(seeker *db.User, booking *db.Booking, space *db.SpaceWithLocation, status string) {
	s.statuses = append(s.statuses, status)
}
