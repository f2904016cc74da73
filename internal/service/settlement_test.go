package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
)

func testSlot(t *testing.T, startMinute, endMinute int) entities.TimeSlot {
	t.Helper()
	slot, err := entities.NewTimeSlot(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), startMinute, endMinute)
	require.NoError(t, err)
	return slot
}

func cashMethod() *db.PaymentMethod {
	return &db.PaymentMethod{ID: 1, UserID: 7, Cash: true}
}

func upiMethod(id string) *db.PaymentMethod {
	return &db.PaymentMethod{ID: 2, UserID: 7, UpiID: sql.NullString{String: id, Valid: true}}
}

func TestComputeSettlementExactUse(t *testing.T) {
	slot := testSlot(t, 600, 720) // 120 minutes nominal
	amount, instruction, err := ComputeSettlement(600, 720, slot, 100, cashMethod())
	require.NoError(t, err)
	assert.Equal(t, 100.0, amount)
	assert.Equal(t, "Please pay ₹100 in cash at the parking counter.", instruction)
}

func TestComputeSettlementRoundsUpToFullIntervals(t *testing.T) {
	slot := testSlot(t, 600, 720) // 120 minutes nominal, price 100

	cases := []struct {
		name       string
		start, end int
		want       float64
	}{
		{"under one interval", 600, 660, 100},
		{"one interval plus a minute", 600, 721, 200},
		{"partial second interval", 600, 810, 200},
		{"two exact intervals", 600, 840, 200},
		{"into third interval", 600, 841, 300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, _, err := ComputeSettlement(tc.start, tc.end, slot, 100, cashMethod())
			require.NoError(t, err)
			assert.Equal(t, tc.want, amount)
		})
	}
}

func TestComputeSettlementUPIInstruction(t *testing.T) {
	slot := testSlot(t, 600, 720)
	amount, instruction, err := ComputeSettlement(600, 810, slot, 150.5, upiMethod("owner@upi"))
	require.NoError(t, err)
	assert.Equal(t, 301.0, amount)
	assert.Equal(t, "Please scan UPI or send ₹301 to owner@upi", instruction)
}

func TestComputeSettlementRejectsEmptyWindow(t *testing.T) {
	slot := testSlot(t, 600, 720)
	_, _, err := ComputeSettlement(720, 720, slot, 100, cashMethod())
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidDuration))

	_, _, err = ComputeSettlement(720, 600, slot, 100, cashMethod())
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidDuration))
}

func TestComputeSettlementRequiresUsableMethod(t *testing.T) {
	slot := testSlot(t, 600, 720)

	_, _, err := ComputeSettlement(600, 720, slot, 100, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNoPaymentMethod))

	// Neither cash nor a UPI id.
	_, _, err = ComputeSettlement(600, 720, slot, 100, &db.PaymentMethod{ID: 3, UserID: 7})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNoPaymentMethod))

	_, _, err = ComputeSettlement(600, 720, slot, 100, upiMethod(""))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNoPaymentMethod))
}
