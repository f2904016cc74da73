package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"spotsavers/internal/db"
	apperrors "spotsavers/internal/errors"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func (r *BookingRepository) CreateBooking(booking *db.Booking) error {
	query := `
		INSERT INTO bookings
		(space_id, seeker_id, vehicle_company, vehicle_model, plate_number, car_color, start_minute, end_minute, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		booking.SpaceID,
		booking.SeekerID,
		booking.VehicleCompany,
		booking.VehicleModel,
		booking.PlateNumber,
		booking.CarColor,
		booking.StartMinute,
		booking.EndMinute,
		db.BookingStatePending,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	booking.State = db.BookingStatePending
	return nil
}

func (r *BookingRepository) GetBookingByID(id int) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT id, space_id, seeker_id, vehicle_company, vehicle_model, plate_number, car_color,
		       start_minute, end_minute, state, amount, payment_method_id, instruction, created_at, updated_at
		FROM bookings WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.SpaceID, &b.SeekerID, &b.VehicleCompany, &b.VehicleModel, &b.PlateNumber, &b.CarColor,
		&b.StartMinute, &b.EndMinute, &b.State, &b.Amount, &b.PaymentMethodID, &b.Instruction,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("booking %d not found", id))
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return &b, nil
}

// ApproveBooking performs the owner's approval as one transaction:
// a compare-and-swap moves the space open -> reserved (losing a race
// surfaces SpaceUnavailable, never a silent overwrite), the booking moves
// pending -> approved, and every sibling pending booking on the space is
// rejected. Returns the rejected sibling ids.
func (r *BookingRepository) ApproveBooking(bookingID, spaceID int) ([]int, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting approve transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE spaces SET booking_state = $1, updated_at = NOW() WHERE id = $2 AND booking_state = $3`,
		db.SpaceStateReserved, spaceID, db.SpaceStateOpen)
	if err != nil {
		return nil, fmt.Errorf("error reserving space %d: %w", spaceID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.SpaceUnavailable(fmt.Sprintf("space %d is no longer open", spaceID))
	}

	res, err = tx.Exec(
		`UPDATE bookings SET state = $1, updated_at = NOW() WHERE id = $2 AND state = $3`,
		db.BookingStateApproved, bookingID, db.BookingStatePending)
	if err != nil {
		return nil, fmt.Errorf("error approving booking %d: %w", bookingID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.InvalidState(fmt.Sprintf("booking %d is not pending", bookingID))
	}

	rows, err := tx.Query(
		`UPDATE bookings SET state = $1, updated_at = NOW()
		 WHERE space_id = $2 AND state = $3 AND id <> $4
		 RETURNING id`,
		db.BookingStateRejected, spaceID, db.BookingStatePending, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error rejecting sibling bookings for space %d: %w", spaceID, err)
	}
	defer rows.Close()

	var rejected []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning rejected booking id: %w", err)
		}
		rejected = append(rejected, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rejected bookings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing approval: %w", err)
	}
	return rejected, nil
}

// RejectBooking moves a pending booking to rejected. Returns false when the
// booking was not pending anymore; the space is untouched either way.
func (r *BookingRepository) RejectBooking(bookingID int) (bool, error) {
	res, err := r.DB.Exec(
		`UPDATE bookings SET state = $1, updated_at = NOW() WHERE id = $2 AND state = $3`,
		db.BookingStateRejected, bookingID, db.BookingStatePending)
	if err != nil {
		return false, fmt.Errorf("error rejecting booking %d: %w", bookingID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rejected rows: %w", err)
	}
	return n == 1, nil
}

// CancelBooking reverts a seeker's approved booking and releases the space
// back to open, both in one transaction.
func (r *BookingRepository) CancelBooking(bookingID, spaceID int) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("error starting cancel transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE bookings SET state = $1, updated_at = NOW() WHERE id = $2 AND state = $3`,
		db.BookingStateCancelled, bookingID, db.BookingStateApproved)
	if err != nil {
		return false, fmt.Errorf("error cancelling booking %d: %w", bookingID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	_, err = tx.Exec(
		`UPDATE spaces SET booking_state = $1, updated_at = NOW() WHERE id = $2 AND booking_state = $3`,
		db.SpaceStateOpen, spaceID, db.SpaceStateReserved)
	if err != nil {
		return false, fmt.Errorf("error releasing space %d: %w", spaceID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing cancel: %w", err)
	}
	return true, nil
}

// SettleBooking stores the settlement and marks the booking settled, only
// if it is still approved. Returns false when another settle won the race;
// the caller re-reads and serves the stored settlement instead.
func (r *BookingRepository) SettleBooking(bookingID, paymentMethodID int, amount float64, instruction string) (bool, error) {
	res, err := r.DB.Exec(
		`UPDATE bookings
		 SET state = $1, amount = $2, payment_method_id = $3, instruction = $4, updated_at = NOW()
		 WHERE id = $5 AND state = $6`,
		db.BookingStateSettled, amount, paymentMethodID, instruction, bookingID, db.BookingStateApproved)
	if err != nil {
		return false, fmt.Errorf("error settling booking %d: %w", bookingID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading settled rows: %w", err)
	}
	return n == 1, nil
}

// ListBookings returns bookings with their space summary, newest first.
// Exactly one of seekerID/ownerID is expected; the owner variant returns
// bookings placed against spaces the owner published.
func (r *BookingRepository) ListBookings(seekerID, ownerID int) ([]db.Booking, []db.SpaceWithLocation, error) {
	query := `
		SELECT b.id, b.space_id, b.seeker_id, b.vehicle_company, b.vehicle_model, b.plate_number, b.car_color,
		       b.start_minute, b.end_minute, b.state, b.amount, b.payment_method_id, b.instruction, b.created_at, b.updated_at,
		       s.id, s.location_id, s.owner_id, s.slot_date, s.start_minute, s.end_minute, s.price, s.booking_state,
		       s.created_at, s.updated_at, l.name, l.address, l.city
		FROM bookings b
		JOIN spaces s ON s.id = b.space_id
		JOIN locations l ON l.id = s.location_id
		WHERE 1=1`
	var args []interface{}
	if seekerID != 0 {
		args = append(args, seekerID)
		query += fmt.Sprintf(" AND b.seeker_id = $%d", len(args))
	}
	if ownerID != 0 {
		args = append(args, ownerID)
		query += fmt.Sprintf(" AND s.owner_id = $%d", len(args))
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	var spaces []db.SpaceWithLocation
	for rows.Next() {
		var b db.Booking
		var s db.SpaceWithLocation
		err := rows.Scan(
			&b.ID, &b.SpaceID, &b.SeekerID, &b.VehicleCompany, &b.VehicleModel, &b.PlateNumber, &b.CarColor,
			&b.StartMinute, &b.EndMinute, &b.State, &b.Amount, &b.PaymentMethodID, &b.Instruction, &b.CreatedAt, &b.UpdatedAt,
			&s.ID, &s.LocationID, &s.OwnerID, &s.SlotDate, &s.StartMinute, &s.EndMinute, &s.Price, &s.BookingState,
			&s.CreatedAt, &s.UpdatedAt, &s.LocationName, &s.Address, &s.City,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, b)
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, spaces, nil
}

// AdminListBookings lists bookings with optional state filter, newest first.
func (r *BookingRepository) AdminListBookings(state string) ([]db.Booking, []db.SpaceWithLocation, error) {
	bookings, spaces, err := r.ListBookings(0, 0)
	if err != nil {
		return nil, nil, err
	}
	if state == "" {
		return bookings, spaces, nil
	}
	var fb []db.Booking
	var fs []db.SpaceWithLocation
	for i, b := range bookings {
		if b.State == state {
			fb = append(fb, b)
			fs = append(fs, spaces[i])
		}
	}
	return fb, fs, nil
}
