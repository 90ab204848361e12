package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/adapters/backend"
	"gymdesk/internal/domain/member"
)

// Registrar defines the backend call needed by RegisterMember.
type Registrar interface {
	RegisterMember(ctx context.Context, reg member.Registration) (backend.RegisteredMember, error)
}

// RegisterMemberInput carries input for the orchestrator.
type RegisterMemberInput struct {
	Registration member.Registration
}

// RegisterMemberResult carries the server-assigned id and QR code of a
// newly registered member.
type RegisterMemberResult struct {
	MemberID    string
	QRCodeImage string
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	Backend Registrar
}

// ExecuteRegisterMember coordinates member registration.
// PRE: numeric form fields are already coerced
// POST: on success the member exists on the backend with a server-assigned id
// INVARIANT: invalid registrations never reach the backend
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (RegisterMemberResult, error) {
	if err := input.Registration.Validate(); err != nil {
		return RegisterMemberResult{}, err
	}

	registered, err := deps.Backend.RegisterMember(ctx, input.Registration)
	if err != nil {
		slog.Info("member_event", "event", "registration_failed", "name", input.Registration.Name)
		return RegisterMemberResult{}, err
	}

	slog.Info("member_event", "event", "member_registered", "member_id", registered.MemberID, "name", input.Registration.Name, "plan", input.Registration.PlanType)
	return RegisterMemberResult{
		MemberID:    registered.MemberID,
		QRCodeImage: registered.QRCodeImage,
	}, nil
}
