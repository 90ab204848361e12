package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/domain/attendance"
)

// Scanner defines the backend call needed by CheckInMember.
type Scanner interface {
	CheckIn(ctx context.Context, memberID string) (attendance.ScanResult, error)
}

// CheckInMemberInput carries input for the check-in orchestrator.
// MemberID comes from the scanner field, either typed or pasted from a
// QR reader acting as a keyboard.
type CheckInMemberInput struct {
	MemberID string
}

// CheckInMemberDeps holds dependencies for CheckInMember.
type CheckInMemberDeps struct {
	Backend Scanner
}

// ErrEmptyMemberID is returned before any network call when the scanner
// field is blank.
var ErrEmptyMemberID = errors.New("please enter a member ID")

// ExecuteCheckInMember submits a scan and returns its classified outcome.
// Backend rejections (unknown member, expired membership) are outcomes,
// not errors; a transport failure also folds into the error outcome so
// the scanner view always has a banner to show.
// PRE: none
// POST: returned result carries exactly one of the four outcomes
func ExecuteCheckInMember(ctx context.Context, input CheckInMemberInput, deps CheckInMemberDeps) (attendance.ScanResult, error) {
	if input.MemberID == "" {
		return attendance.ScanResult{}, ErrEmptyMemberID
	}

	result, err := deps.Backend.CheckIn(ctx, input.MemberID)
	if err != nil {
		slog.Warn("checkin_event", "event", "scan_unreachable", "member_id", input.MemberID, "error", err)
		return attendance.ScanResult{
			Outcome: attendance.OutcomeError,
			Message: "Error processing scan. Please try again.",
		}, nil
	}

	slog.Info("checkin_event", "event", "scan_classified", "member_id", input.MemberID, "outcome", string(result.Outcome))
	return result, nil
}
