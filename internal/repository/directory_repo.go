package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
)

// DirectoryRepository resolves location and user ids to their display
// attributes. The core never interprets these fields, it only stores and
// shows them; the records themselves are managed outside the core.
type DirectoryRepository struct {
	DB *sql.DB
}

func NewDirectoryRepository(database *sql.DB) *DirectoryRepository {
	return &DirectoryRepository{DB: database}
}

func (r *DirectoryRepository) GetLocation(id int) (*db.Location, error) {
	var loc db.Location
	err := r.DB.QueryRow(
		`SELECT id, owner_id, name, address, city, lat, long FROM locations WHERE id = $1`, id).
		Scan(&loc.ID, &loc.OwnerID, &loc.Name, &loc.Address, &loc.City, &loc.Lat, &loc.Long)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("location %d not found", id))
		}
		return nil, fmt.Errorf("error querying location %d: %w", id, err)
	}
	return &loc, nil
}

func (r *DirectoryRepository) GetUser(id int) (*db.User, error) {
	var u db.User
	err := r.DB.QueryRow(
		`SELECT id, name, email, phone, type FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound(fmt.Sprintf("user %d not found", id))
		}
		return nil, fmt.Errorf("error querying user %d: %w", id, err)
	}
	return &u, nil
}

// ListLocations returns locations with the mean of their review ratings,
// optionally filtered by owner and city substring.
func (r *DirectoryRepository) ListLocations(ownerID int, city string) ([]entities.LocationResponse, error) {
	query := `
		SELECT l.id, l.owner_id, l.name, l.address, l.city, l.lat, l.long,
		       COALESCE(AVG(rv.rating), 0) AS owner_rating
		FROM locations l
		LEFT JOIN reviews rv ON rv.location_id = l.id
		WHERE 1=1`
	var args []interface{}
	if ownerID != 0 {
		args = append(args, ownerID)
		query += fmt.Sprintf(" AND l.owner_id = $%d", len(args))
	}
	if city != "" {
		args = append(args, city)
		query += fmt.Sprintf(" AND l.city ILIKE '%%' || $%d || '%%'", len(args))
	}
	query += " GROUP BY l.id ORDER BY l.name"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying locations: %w", err)
	}
	defer rows.Close()

	var locations []entities.LocationResponse
	for rows.Next() {
		var loc entities.LocationResponse
		err := rows.Scan(&loc.ID, &loc.OwnerID, &loc.Name, &loc.Address, &loc.City, &loc.Lat, &loc.Long, &loc.OwnerRating)
		if err != nil {
			return nil, fmt.Errorf("error scanning location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating locations: %w", err)
	}
	return locations, nil
}
