package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
)

type SpaceRepository struct {
	DB *sql.DB
}

func NewSpaceRepository(database *sql.DB) *SpaceRepository {
	return &SpaceRepository{DB: database}
}

// SpaceFilter narrows space listings. Zero values mean no filter.
type SpaceFilter struct {
	LocationID int
	OwnerID    int
	Date       time.Time
	City       string
}

// CreateSpace inserts the space unless its slot overlaps an already
// accepted slot at the same location and date. The conflict check and the
// insert run in one transaction: existing rows for the (location, date)
// pair are locked with FOR UPDATE, and an advisory lock on the pair covers
// the case where the pair has no rows yet, so two concurrent publishes
// cannot both pass an empty check.
func (r *SpaceRepository) CreateSpace(space *db.Space) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting space publish transaction: %w", err)
	}
	defer tx.Rollback()

	dateKey := int32(space.SlotDate.Unix() / 86400)
	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1, $2)`, int32(space.LocationID), dateKey); err != nil {
		return fmt.Errorf("error acquiring publish lock for location %d: %w", space.LocationID, err)
	}

	candidate := space.Slot()
	conflict, err := hasSlotConflict(tx, space.LocationID, candidate)
	if err != nil {
		return err
	}
	if conflict {
		return apperrors.Conflict("this time slot overlaps with an existing space at the location")
	}

	query := `
		INSERT INTO spaces (location_id, owner_id, slot_date, start_minute, end_minute, price, booking_state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		space.LocationID,
		space.OwnerID,
		space.SlotDate,
		space.StartMinute,
		space.EndMinute,
		space.Price,
		db.SpaceStateOpen,
	).Scan(&space.ID, &space.CreatedAt, &space.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting space: %w", err)
	}
	space.BookingState = db.SpaceStateOpen

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing space publish: %w", err)
	}
	return nil
}

func hasSlotConflict(tx *sql.Tx, locationID int, candidate entities.TimeSlot) (bool, error) {
	rows, err := tx.Query(
		`SELECT start_minute, end_minute FROM spaces WHERE location_id = $1 AND slot_date = $2 FOR UPDATE`,
		locationID, candidate.Date)
	if err != nil {
		return false, fmt.Errorf("error querying accepted slots for location %d: %w", locationID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var startMinute, endMinute int
		if err := rows.Scan(&startMinute, &endMinute); err != nil {
			return false, fmt.Errorf("error scanning accepted slot: %w", err)
		}
		existing := entities.TimeSlot{Date: candidate.Date, StartMinute: startMinute, EndMinute: endMinute}
		if candidate.Overlaps(existing) {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("error iterating accepted slots: %w", err)
	}
	return false, nil
}

func (r *SpaceRepository) GetSpaceByID(id int) (*db.Space, error) {
	var space db.Space
	query := `
		SELECT id, location_id, owner_id, slot_date, start_minute, end_minute, price, booking_state, created_at, updated_at
		FROM spaces WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&space.ID, &space.LocationID, &space.OwnerID, &space.SlotDate,
		&space.StartMinute, &space.EndMinute, &space.Price, &space.BookingState,
		&space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("space %d not found", id))
		}
		return nil, fmt.Errorf("error querying space %d: %w", id, err)
	}
	return &space, nil
}

// ListSpaces returns spaces joined with their location's display
// attributes, filtered in SQL. The availability (offered) filter is applied
// by the service on top of this.
func (r *SpaceRepository) ListSpaces(filter SpaceFilter) ([]db.SpaceWithLocation, error) {
	query := `
		SELECT s.id, s.location_id, s.owner_id, s.slot_date, s.start_minute, s.end_minute,
		       s.price, s.booking_state, s.created_at, s.updated_at,
		       l.name, l.address, l.city
		FROM spaces s
		JOIN locations l ON l.id = s.location_id
		WHERE 1=1`
	var args []interface{}
	if filter.LocationID != 0 {
		args = append(args, filter.LocationID)
		query += fmt.Sprintf(" AND s.location_id = $%d", len(args))
	}
	if filter.OwnerID != 0 {
		args = append(args, filter.OwnerID)
		query += fmt.Sprintf(" AND s.owner_id = $%d", len(args))
	}
	if !filter.Date.IsZero() {
		args = append(args, entities.NormalizeDate(filter.Date))
		query += fmt.Sprintf(" AND s.slot_date = $%d", len(args))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(" AND l.city ILIKE '%%' || $%d || '%%'", len(args))
	}
	query += " ORDER BY s.slot_date, s.start_minute"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying spaces: %w", err)
	}
	defer rows.Close()

	var spaces []db.SpaceWithLocation
	for rows.Next() {
		var s db.SpaceWithLocation
		err := rows.Scan(
			&s.ID, &s.LocationID, &s.OwnerID, &s.SlotDate, &s.StartMinute, &s.EndMinute,
			&s.Price, &s.BookingState, &s.CreatedAt, &s.UpdatedAt,
			&s.LocationName, &s.Address, &s.City,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning space row: %w", err)
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating space rows: %w", err)
	}
	return spaces, nil
}

// AdminListSpaces lists spaces with optional date/state filters for the
// admin surface, newest first.
func (r *SpaceRepository) AdminListSpaces(date, state string) ([]db.SpaceWithLocation, error) {
	filter := SpaceFilter{}
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
		}
		filter.Date = parsed
	}
	spaces, err := r.ListSpaces(filter)
	if err != nil {
		return nil, err
	}
	if state == "" {
		return spaces, nil
	}
	var filtered []db.SpaceWithLocation
	for _, s := range spaces {
		if s.BookingState == state {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}
