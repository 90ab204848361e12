package projections

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/attendance"
)

// AttendanceHistoryAPI defines the backend call needed by the history
// projection.
type AttendanceHistoryAPI interface {
	AttendanceHistory(ctx context.Context) ([]attendance.Record, error)
}

// GetAttendanceHistoryDeps holds dependencies for GetAttendanceHistory.
type GetAttendanceHistoryDeps struct {
	Backend AttendanceHistoryAPI
}

// GetAttendanceHistoryResult carries the recent check-in window.
type GetAttendanceHistoryResult struct {
	Records []attendance.Record
}

// QueryGetAttendanceHistory retrieves the recent check-in list for the
// scanner page. A fetch failure degrades to an empty list rather than an
// error page; the history panel is decoration next to the scan form.
// PRE: the auth gate is open
// POST: Records is non-nil; the error is always nil
func QueryGetAttendanceHistory(ctx context.Context, deps GetAttendanceHistoryDeps) GetAttendanceHistoryResult {
	records, err := deps.Backend.AttendanceHistory(ctx)
	if err != nil {
		slog.Warn("attendance_event", "event", "history_fetch_failed", "error", err)
		return GetAttendanceHistoryResult{Records: []attendance.Record{}}
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return GetAttendanceHistoryResult{Records: records}
}
