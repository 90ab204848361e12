package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/domain/member"
)

// MemberEditor defines the backend calls needed by the member-list
// edit and delete actions.
type MemberEditor interface {
	UpdateMember(ctx context.Context, m member.Member) (member.Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// UpdateMemberInput carries the full edited record; the backend replaces
// the member wholesale rather than patching fields.
type UpdateMemberInput struct {
	Member member.Member
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	Backend MemberEditor
}

// ExecuteUpdateMember submits an inline edit and returns the backend's
// updated copy.
// PRE: input.Member.ID identifies an existing member
// POST: on success the returned member reflects the backend's state
// INVARIANT: invalid edits never reach the backend
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) (member.Member, error) {
	if input.Member.ID == "" {
		return member.Member{}, errors.New("member id is required")
	}
	if err := input.Member.Validate(); err != nil {
		return member.Member{}, err
	}

	updated, err := deps.Backend.UpdateMember(ctx, input.Member)
	if err != nil {
		slog.Info("member_event", "event", "update_failed", "member_id", input.Member.ID)
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", updated.ID)
	return updated, nil
}

// DeleteMemberInput carries input for the delete action.
type DeleteMemberInput struct {
	MemberID string
}

// DeleteMemberDeps holds dependencies for DeleteMember.
type DeleteMemberDeps struct {
	Backend MemberEditor
}

// ExecuteDeleteMember removes a member. Deletion here is immediate;
// callers gather the user's confirmation before invoking it.
// PRE: MemberID is non-empty
// POST: on success the member no longer exists on the backend
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps DeleteMemberDeps) error {
	if input.MemberID == "" {
		return errors.New("member id is required")
	}

	if err := deps.Backend.DeleteMember(ctx, input.MemberID); err != nil {
		slog.Info("member_event", "event", "delete_failed", "member_id", input.MemberID)
		return err
	}

	slog.Info("member_event", "event", "member_deleted", "member_id", input.MemberID)
	return nil
}
