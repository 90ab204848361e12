package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/payment"
)

// PaymentRecorder defines the backend call needed by RecordPayment.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, p payment.Request) (time.Time, error)
}

// RecordPaymentInput carries input for the payment orchestrator.
type RecordPaymentInput struct {
	Request payment.Request
}

// RecordPaymentResult carries the backend's recomputed renewal date.
type RecordPaymentResult struct {
	NewRenewalDate time.Time
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	Backend PaymentRecorder
}

// ExecuteRecordPayment records a cash payment against a membership.
// PRE: numeric form fields are already coerced
// POST: on success the backend has extended the membership
// INVARIANT: invalid requests never reach the backend
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (RecordPaymentResult, error) {
	if err := input.Request.Validate(); err != nil {
		return RecordPaymentResult{}, err
	}

	renewal, err := deps.Backend.RecordPayment(ctx, input.Request)
	if err != nil {
		slog.Info("payment_event", "event", "payment_failed", "member_id", input.Request.MemberID)
		return RecordPaymentResult{}, err
	}

	slog.Info("payment_event", "event", "payment_recorded",
		"member_id", input.Request.MemberID,
		"amount", input.Request.Amount,
		"duration_months", input.Request.DurationInMonths,
		"new_renewal_date", renewal.Format("2006-01-02"))
	return RecordPaymentResult{NewRenewalDate: renewal}, nil
}
