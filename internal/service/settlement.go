package service

import (
	"fmt"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
	"spotsavers/internal/utils"
)

// ComputeSettlement prices a booking's actual-use window against the
// space's nominal slot and derives the payment instruction. Billing rounds
// up to whole nominal-slot multiples: partial overage into a new interval
// is billed as a full interval. Pure and deterministic, so settle retries
// always reproduce the same amount and instruction.
func ComputeSettlement(windowStart, windowEnd int, slot entities.TimeSlot, price float64, method *db.PaymentMethod) (float64, string, error) {
	usedMinutes := windowEnd - windowStart
	if usedMinutes <= 0 {
		return 0, "", apperrors.InvalidDuration("booking window must have a positive duration")
	}

	nominalMinutes := slot.DurationMinutes()
	intervals := usedMinutes / nominalMinutes
	if usedMinutes%nominalMinutes != 0 {
		intervals++
	}
	amount := price * float64(intervals)

	switch {
	case method == nil:
		return 0, "", apperrors.NoPaymentMethod("no payment method selected")
	case method.Cash:
		return amount, fmt.Sprintf("Please pay ₹%s in cash at the parking counter.", utils.FormatAmount(amount)), nil
	case method.UpiID.Valid && method.UpiID.String != "":
		return amount, fmt.Sprintf("Please scan UPI or send ₹%s to %s", utils.FormatAmount(amount), method.UpiID.String), nil
	default:
		return 0, "", apperrors.NoPaymentMethod("payment method has neither cash nor a UPI id")
	}
}
