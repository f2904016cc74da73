package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"spotsavers/internal/db"
	apperrors "spotsavers/internal/errors"
)

// PaymentMethodRepository is a read-only view of the payment-method store.
// Creating and editing methods belongs to the surrounding system; the core
// only resolves a method at settlement time.
type PaymentMethodRepository struct {
	DB *sql.DB
}

func NewPaymentMethodRepository(database *sql.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{DB: database}
}

func (r *PaymentMethodRepository) GetPaymentMethod(id int) (*db.PaymentMethod, error) {
	var pm db.PaymentMethod
	err := r.DB.QueryRow(
		`SELECT id, user_id, cash, upi_id FROM payment_methods WHERE id = $1`, id).
		Scan(&pm.ID, &pm.UserID, &pm.Cash, &pm.UpiID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NoPaymentMethod(fmt.Sprintf("payment method %d not found", id))
		}
		return nil, fmt.Errorf("error querying payment method %d: %w", id, err)
	}
	return &pm, nil
}

func (r *PaymentMethodRepository) ListByUser(userID int) ([]db.PaymentMethod, error) {
	rows, err := r.DB.Query(
		`SELECT id, user_id, cash, upi_id FROM payment_methods WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying payment methods for user %d: %w", userID, err)
	}
	defer rows.Close()

	var methods []db.PaymentMethod
	for rows.Next() {
		var pm db.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.UserID, &pm.Cash, &pm.UpiID); err != nil {
			return nil, fmt.Errorf("error scanning payment method: %w", err)
		}
		methods = append(methods, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating payment methods: %w", err)
	}
	return methods, nil
}
