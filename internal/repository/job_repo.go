package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"spotsavers/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// ExpireSpaces flips spaces to expired once their slot end plus the grace
// window has passed. Expired spaces are read-only thereafter and are never
// deleted by the core.
func (r *JobRepository) ExpireSpaces() (int64, error) {
	query := `
		UPDATE spaces
		SET booking_state = $1, updated_at = NOW()
		WHERE booking_state <> $1
		  AND slot_date + make_interval(mins => end_minute) + $2::interval < NOW()`
	result, err := r.DB.Exec(query, db.SpaceStateExpired, fmt.Sprintf("%d minutes", int(db.OfferCutoff.Minutes())))
	if err != nil {
		return 0, fmt.Errorf("error expiring spaces: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected for space expiry: %v", err)
		return 0, nil
	}
	return rowsAffected, nil
}

// GetStalePendingBookingIDs finds pending bookings created before the given
// time, for the optional stale-pending sweep.
func (r *JobRepository) GetStalePendingBookingIDs(before time.Time) ([]int, error) {
	rows, err := r.DB.Query(
		`SELECT id FROM bookings WHERE state = $1 AND created_at < $2`,
		db.BookingStatePending, before)
	if err != nil {
		return nil, fmt.Errorf("error querying stale pending bookings: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateBookingStates moves a list of bookings to a new state, also
// refreshing updated_at.
func (r *JobRepository) UpdateBookingStates(ids []int, newState string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET state = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newState, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking states: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated state for %d bookings to '%s'", rowsAffected, newState)
	}
	return nil
}
