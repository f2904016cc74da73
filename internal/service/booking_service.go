package service

import (
	"fmt"
	"log"
	"time"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
	"spotsavers/internal/utils"
)

// BookingStore persists bookings and performs the transactional state
// transitions that also touch the target space.
type BookingStore interface {
	CreateBooking(booking *db.Booking) error
	GetBookingByID(id int) (*db.Booking, error)
	ApproveBooking(bookingID, spaceID int) ([]int, error)
	RejectBooking(bookingID int) (bool, error)
	CancelBooking(bookingID, spaceID int) (bool, error)
	SettleBooking(bookingID, paymentMethodID int, amount float64, instruction string) (bool, error)
	ListBookings(seekerID, ownerID int) ([]db.Booking, []db.SpaceWithLocation, error)
}

type PaymentMethodStore interface {
	GetPaymentMethod(id int) (*db.PaymentMethod, error)
	ListByUser(userID int) ([]db.PaymentMethod, error)
}

// Notifier delivers booking status updates to the seeker. Implementations
// must not block the request path.
type Notifier interface {
	NotifyBookingStatus(seeker *db.User, booking *db.Booking, space *db.SpaceWithLocation, status string)
}

type BookingService struct {
	bookings  BookingStore
	spaces    SpaceStore
	methods   PaymentMethodStore
	directory DirectoryStore
	sender    Notifier
	now       func() time.Time
}

func NewBookingService(bookings BookingStore, spaces SpaceStore, methods PaymentMethodStore, directory DirectoryStore, sender Notifier) *BookingService {
	return &BookingService{
		bookings:  bookings,
		spaces:    spaces,
		methods:   methods,
		directory: directory,
		sender:    sender,
		now:       time.Now,
	}
}

// CreateBooking submits a seeker's request against an offered space. The
// space's state is not touched: a space may accumulate any number of
// pending bookings until the owner decides.
func (s *BookingService) CreateBooking(req *entities.CreateBookingRequest) (*entities.BookingResponse, error) {
	if req.VehicleCompany == "" || req.VehicleModel == "" || req.PlateNumber == "" || req.CarColor == "" {
		return nil, apperrors.Validation("vehicle company, model, plate number and color are required")
	}

	space, err := s.spaces.GetSpaceByID(req.SpaceID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !space.Offered(now) {
		return nil, apperrors.SpaceUnavailable(fmt.Sprintf("space %d is not available for booking", space.ID))
	}
	if err := checkLeadTime(space.SlotDate, now); err != nil {
		return nil, err
	}

	windowStart, windowEnd := req.WindowStart, req.WindowEnd
	if windowStart == 0 && windowEnd == 0 {
		windowStart, windowEnd = space.StartMinute, space.EndMinute
	}
	if _, err := entities.NewTimeSlot(space.SlotDate, windowStart, windowEnd); err != nil {
		return nil, err
	}

	booking := &db.Booking{
		SpaceID:        req.SpaceID,
		SeekerID:       req.SeekerID,
		VehicleCompany: req.VehicleCompany,
		VehicleModel:   req.VehicleModel,
		PlateNumber:    req.PlateNumber,
		CarColor:       req.CarColor,
		StartMinute:    windowStart,
		EndMinute:      windowEnd,
	}
	if err := s.bookings.CreateBooking(booking); err != nil {
		return nil, err
	}
	return toBookingResponse(booking, nil), nil
}

// ApproveBooking is the owner's exclusive decision: the space moves
// open -> reserved, the booking becomes approved, and every other pending
// booking on the same space is rejected as an atomic side effect of the
// same transaction.
func (s *BookingService) ApproveBooking(bookingID, ownerID int) (*entities.BookingResponse, error) {
	booking, space, err := s.loadForOwner(bookingID, ownerID)
	if err != nil {
		return nil, err
	}
	if booking.State != db.BookingStatePending {
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is %s, only a pending booking can be approved", booking.ID, booking.State))
	}

	rejected, err := s.bookings.ApproveBooking(booking.ID, booking.SpaceID)
	if err != nil {
		return nil, err
	}
	booking.State = db.BookingStateApproved
	space.BookingState = db.SpaceStateReserved
	if len(rejected) > 0 {
		log.Printf("Approved booking %d on space %d, auto-rejected %d sibling bookings: %v", booking.ID, space.ID, len(rejected), rejected)
	}

	s.notify(booking, space, db.BookingStateApproved)
	return toBookingResponse(booking, nil), nil
}

// RejectBooking declines one pending booking; the space is untouched.
func (s *BookingService) RejectBooking(bookingID, ownerID int) (*entities.BookingResponse, error) {
	booking, space, err := s.loadForOwner(bookingID, ownerID)
	if err != nil {
		return nil, err
	}
	if booking.State != db.BookingStatePending {
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is %s, only a pending booking can be rejected", booking.ID, booking.State))
	}

	applied, err := s.bookings.RejectBooking(booking.ID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is no longer pending", booking.ID))
	}
	booking.State = db.BookingStateRejected

	s.notify(booking, space, db.BookingStateRejected)
	return toBookingResponse(booking, nil), nil
}

// CancelBooking lets the seeker walk away from an approved, unsettled
// booking. Unconditional (no owner veto); the space reverts to open.
func (s *BookingService) CancelBooking(bookingID, seekerID int) (*entities.BookingResponse, error) {
	booking, err := s.loadForSeeker(bookingID, seekerID)
	if err != nil {
		return nil, err
	}
	if booking.State != db.BookingStateApproved {
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is %s, only an approved booking can be cancelled", booking.ID, booking.State))
	}

	applied, err := s.bookings.CancelBooking(booking.ID, booking.SpaceID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is no longer approved", booking.ID))
	}
	booking.State = db.BookingStateCancelled
	return toBookingResponse(booking, nil), nil
}

// SettleBooking computes the amount owed and the payment instruction.
// Idempotent: a settled booking returns its stored settlement verbatim,
// and a lost settle race re-reads instead of recomputing over the winner.
func (s *BookingService) SettleBooking(bookingID, seekerID, paymentMethodID int) (*entities.SettlementResponse, error) {
	booking, err := s.loadForSeeker(bookingID, seekerID)
	if err != nil {
		return nil, err
	}
	if booking.State == db.BookingStateSettled {
		return storedSettlement(booking)
	}
	if booking.State != db.BookingStateApproved {
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is %s, only an approved booking can be settled", booking.ID, booking.State))
	}

	space, err := s.spaces.GetSpaceByID(booking.SpaceID)
	if err != nil {
		return nil, err
	}
	method, err := s.methods.GetPaymentMethod(paymentMethodID)
	if err != nil {
		return nil, err
	}

	amount, instruction, err := ComputeSettlement(booking.StartMinute, booking.EndMinute, space.Slot(), space.Price, method)
	if err != nil {
		return nil, err
	}

	applied, err := s.bookings.SettleBooking(booking.ID, method.ID, amount, instruction)
	if err != nil {
		return nil, err
	}
	if !applied {
		latest, err := s.bookings.GetBookingByID(booking.ID)
		if err != nil {
			return nil, err
		}
		if latest.State == db.BookingStateSettled {
			return storedSettlement(latest)
		}
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is no longer approved", booking.ID))
	}

	booking.State = db.BookingStateSettled
	booking.Instruction.String, booking.Instruction.Valid = instruction, true
	s.notify(booking, space, db.BookingStateSettled)
	return &entities.SettlementResponse{Amount: amount, Instruction: instruction}, nil
}

// ListBookings returns a seeker's bookings or, for owners, the bookings
// placed against the spaces they published.
func (s *BookingService) ListBookings(seekerID, ownerID int) ([]entities.BookingResponse, error) {
	if (seekerID == 0) == (ownerID == 0) {
		return nil, apperrors.Validation("exactly one of seeker_id and owner_id is required")
	}
	bookings, spaces, err := s.bookings.ListBookings(seekerID, ownerID)
	if err != nil {
		return nil, err
	}
	responses := []entities.BookingResponse{}
	for i := range bookings {
		responses = append(responses, *toBookingResponse(&bookings[i], &spaces[i]))
	}
	return responses, nil
}

// ListPaymentMethods returns the methods registered by one user, for the
// seeker to pick from before settling.
func (s *BookingService) ListPaymentMethods(userID int) ([]entities.PaymentMethodResponse, error) {
	methods, err := s.methods.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	responses := []entities.PaymentMethodResponse{}
	for _, m := range methods {
		responses = append(responses, entities.PaymentMethodResponse{
			ID:     m.ID,
			UserID: m.UserID,
			Cash:   m.Cash,
			UpiID:  m.UpiID.String,
		})
	}
	return responses, nil
}

func (s *BookingService) loadForOwner(bookingID, ownerID int) (*db.Booking, *db.Space, error) {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err != nil {
		return nil, nil, err
	}
	space, err := s.spaces.GetSpaceByID(booking.SpaceID)
	if err != nil {
		return nil, nil, err
	}
	if space.OwnerID != ownerID {
		return nil, nil, apperrors.Validation(fmt.Sprintf("only the owner of space %d may decide booking %d", space.ID, booking.ID))
	}
	return booking, space, nil
}

func (s *BookingService) loadForSeeker(bookingID, seekerID int) (*db.Booking, error) {
	booking, err := s.bookings.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.SeekerID != seekerID {
		return nil, apperrors.Validation(fmt.Sprintf("booking %d does not belong to seeker %d", booking.ID, seekerID))
	}
	return booking, nil
}

func storedSettlement(booking *db.Booking) (*entities.SettlementResponse, error) {
	if !booking.Amount.Valid || !booking.Instruction.Valid {
		return nil, fmt.Errorf("booking %d is settled but has no stored settlement", booking.ID)
	}
	return &entities.SettlementResponse{Amount: booking.Amount.Float64, Instruction: booking.Instruction.String}, nil
}

func (s *BookingService) notify(booking *db.Booking, space *db.Space, status string) {
	seeker, err := s.directory.GetUser(booking.SeekerID)
	if err != nil {
		log.Printf("Booking %d %s, but seeker %d could not be resolved for notification: %v", booking.ID, status, booking.SeekerID, err)
		return
	}
	withLocation := &db.SpaceWithLocation{Space: *space}
	if location, err := s.directory.GetLocation(space.LocationID); err != nil {
		log.Printf("Location %d could not be resolved for notification: %v", space.LocationID, err)
	} else {
		withLocation.LocationName = location.Name
		withLocation.Address = location.Address
		withLocation.City = location.City
	}
	s.sender.NotifyBookingStatus(seeker, booking, withLocation, status)
}

func toBookingResponse(booking *db.Booking, space *db.SpaceWithLocation) *entities.BookingResponse {
	resp := &entities.BookingResponse{
		ID:             booking.ID,
		SpaceID:        booking.SpaceID,
		SeekerID:       booking.SeekerID,
		VehicleCompany: booking.VehicleCompany,
		VehicleModel:   booking.VehicleModel,
		PlateNumber:    booking.PlateNumber,
		CarColor:       booking.CarColor,
		StartMinute:    booking.StartMinute,
		EndMinute:      booking.EndMinute,
		State:          booking.State,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}
	if booking.State == db.BookingStateSettled && booking.Amount.Valid && booking.Instruction.Valid {
		resp.Settlement = &entities.SettlementResponse{Amount: booking.Amount.Float64, Instruction: booking.Instruction.String}
	}
	if space != nil {
		date := space.SlotDate
		resp.SpaceDate = &date
		resp.SpaceStartTime = utils.FormatClock(space.StartMinute)
		resp.SpaceEndTime = utils.FormatClock(space.EndMinute)
		resp.LocationName = space.LocationName
		resp.City = space.City
	}
	return resp
}
