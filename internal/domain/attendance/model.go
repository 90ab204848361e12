package attendance

import (
	"net/http"
	"time"
)

// Record is a read-only projection of one check-in event as reported by the
// backend. The panel never mutates attendance.
type Record struct {
	MemberID    string
	MemberName  string
	CheckInTime time.Time
}

// Date returns the check-in date for table rendering.
func (r Record) Date() string {
	return r.CheckInTime.Local().Format("02/01/2006")
}

// Clock returns the check-in time of day for table rendering.
func (r Record) Clock() string {
	return r.CheckInTime.Local().Format("3:04:05 PM")
}

// Outcome classifies the result of a check-in attempt.
type Outcome string

// The four check-in outcomes. Every scan response maps to exactly one.
const (
	OutcomeSuccess  Outcome = "success"
	OutcomeNotFound Outcome = "not_found"
	OutcomeExpired  Outcome = "expired"
	OutcomeError    Outcome = "error"
)

// ClassifyScan maps an HTTP status code from the scan endpoint to an outcome.
// PRE: status is the response status code (0 for transport failures)
// POST: returns exactly one of the four outcomes
// INVARIANT: 2xx -> success, 404 -> not_found, 403 -> expired, else error
func ClassifyScan(status int) Outcome {
	switch {
	case status >= 200 && status < 300:
		return OutcomeSuccess
	case status == http.StatusNotFound:
		return OutcomeNotFound
	case status == http.StatusForbidden:
		return OutcomeExpired
	default:
		return OutcomeError
	}
}

// ScanResult carries the classified result of one check-in attempt.
type ScanResult struct {
	Outcome    Outcome
	Message    string
	MemberName string
}

// NotificationSent reports whether the backend triggered an out-of-band
// alert for this outcome. The panel only displays the indicator.
func (s ScanResult) NotificationSent() bool {
	return s.Outcome == OutcomeNotFound || s.Outcome == OutcomeExpired
}
