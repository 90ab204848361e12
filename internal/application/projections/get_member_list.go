package projections

import (
	"context"

	"gymdesk/internal/domain/member"
)

// MemberListAPI defines the backend call needed by the member-list
// projection.
type MemberListAPI interface {
	ListMembers(ctx context.Context) ([]member.Member, error)
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	Backend MemberListAPI
}

// GetMemberListResult carries the query result.
type GetMemberListResult struct {
	Members []member.Member
}

// QueryGetMemberList retrieves the full member roster. There is no
// pagination or filtering; the backend returns everything and the list
// page renders everything.
// PRE: the auth gate is open
// POST: Members is non-nil on success
func QueryGetMemberList(ctx context.Context, deps GetMemberListDeps) (GetMemberListResult, error) {
	members, err := deps.Backend.ListMembers(ctx)
	if err != nil {
		return GetMemberListResult{}, err
	}
	if members == nil {
		members = []member.Member{}
	}
	return GetMemberListResult{Members: members}, nil
}
