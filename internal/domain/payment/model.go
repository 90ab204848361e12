package payment

import (
	"errors"
	"time"
)

// AllowedDurations are the membership durations the backend accepts, in months.
var AllowedDurations = []int{1, 3, 6, 12}

// Record is a read-only projection of one payment as reported by the backend,
// scoped to a single member.
type Record struct {
	Amount           float64
	PaymentDate      time.Time
	DurationInMonths int
	PaymentMethod    string
}

// Date returns the payment date for list rendering.
func (r Record) Date() string {
	return r.PaymentDate.Local().Format("02/01/2006")
}

// ValidDuration reports whether months is an accepted membership duration.
func ValidDuration(months int) bool {
	for _, d := range AllowedDurations {
		if months == d {
			return true
		}
	}
	return false
}

// Request carries the fields of the record-payment form, already coerced to
// numeric types.
type Request struct {
	MemberID         string
	Amount           float64
	DurationInMonths int
}

// Validate checks the payment request before it is sent to the backend.
// PRE: numeric fields are already coerced
// POST: returns nil if valid, error describing the first violation otherwise
func (r *Request) Validate() error {
	if r.MemberID == "" {
		return errors.New("member id is required")
	}
	if r.Amount < 1 {
		return errors.New("amount must be at least 1")
	}
	if !ValidDuration(r.DurationInMonths) {
		return errors.New("duration must be 1, 3, 6, or 12 months")
	}
	return nil
}
