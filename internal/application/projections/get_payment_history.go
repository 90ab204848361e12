package projections

import (
	"context"
	"log/slog"

	"gymdesk/internal/adapters/backend"
	"gymdesk/internal/domain/payment"
)

// PaymentHistoryAPI defines the backend call needed by the payment
// history projection.
type PaymentHistoryAPI interface {
	PaymentHistory(ctx context.Context, memberID string) ([]payment.Record, error)
}

// HistoryState distinguishes the three renderings of the payment history
// panel: nothing searched yet, a member with no payments, and a failed
// lookup. A member with payments is the fourth, populated state.
type HistoryState string

const (
	HistoryUnsearched HistoryState = "unsearched"
	HistoryEmpty      HistoryState = "empty"
	HistoryError      HistoryState = "error"
	HistoryPopulated  HistoryState = "populated"
)

// GetPaymentHistoryQuery carries the searched member id. An empty id
// means no search was performed.
type GetPaymentHistoryQuery struct {
	MemberID string
}

// GetPaymentHistoryDeps holds dependencies for GetPaymentHistory.
type GetPaymentHistoryDeps struct {
	Backend PaymentHistoryAPI
}

// GetPaymentHistoryResult carries the panel state and, when populated,
// the records newest first as the backend returns them.
type GetPaymentHistoryResult struct {
	State        HistoryState
	MemberID     string
	Records      []payment.Record
	ErrorMessage string
}

// QueryGetPaymentHistory retrieves all payments for one member. Failures
// become the error state with the backend's message so the panel can
// distinguish "no payments" from "lookup failed".
// PRE: the auth gate is open
// POST: State is exactly one of the four panel states; the error is always nil
func QueryGetPaymentHistory(ctx context.Context, query GetPaymentHistoryQuery, deps GetPaymentHistoryDeps) GetPaymentHistoryResult {
	if query.MemberID == "" {
		return GetPaymentHistoryResult{State: HistoryUnsearched}
	}

	records, err := deps.Backend.PaymentHistory(ctx, query.MemberID)
	if err != nil {
		slog.Warn("payment_event", "event", "history_fetch_failed", "member_id", query.MemberID, "error", err)
		return GetPaymentHistoryResult{
			State:        HistoryError,
			MemberID:     query.MemberID,
			ErrorMessage: backend.ErrorMessage(err, "Could not fetch payment history."),
		}
	}
	if len(records) == 0 {
		return GetPaymentHistoryResult{State: HistoryEmpty, MemberID: query.MemberID}
	}
	return GetPaymentHistoryResult{State: HistoryPopulated, MemberID: query.MemberID, Records: records}
}
