package orchestrators

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/adapters/backend"
	"gymdesk/internal/domain/member"
)

type mockRegistrar struct {
	result backend.RegisteredMember
	err    error
	calls  int
	got    member.Registration
}

func (m *mockRegistrar) RegisterMember(_ context.Context, reg member.Registration) (backend.RegisteredMember, error) {
	m.calls++
	m.got = reg
	return m.result, m.err
}

func validRegistration() member.Registration {
	return member.Registration{
		Name:       "Asha",
		Age:        28,
		Gender:     member.GenderFemale,
		Contact:    "9990001111",
		PlanType:   member.PlanMonthly,
		CashAmount: 500,
	}
}

// TestExecuteRegisterMember_Success forwards the registration and returns
// the server-assigned id and QR code.
func TestExecuteRegisterMember_Success(t *testing.T) {
	reg := &mockRegistrar{result: backend.RegisteredMember{MemberID: "GM-654321", QRCodeImage: "data:image/png;base64,AAA"}}

	result, err := ExecuteRegisterMember(context.Background(), RegisterMemberInput{Registration: validRegistration()}, RegisterMemberDeps{Backend: reg})
	if err != nil {
		t.Fatalf("ExecuteRegisterMember failed: %v", err)
	}
	if result.MemberID != "GM-654321" {
		t.Errorf("MemberID = %q", result.MemberID)
	}
	if result.QRCodeImage == "" {
		t.Error("QRCodeImage empty")
	}
	if reg.got.Name != "Asha" {
		t.Errorf("forwarded name = %q", reg.got.Name)
	}
}

// TestExecuteRegisterMember_InvalidNeverReachesBackend validates locally first.
func TestExecuteRegisterMember_InvalidNeverReachesBackend(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*member.Registration)
	}{
		{"empty name", func(r *member.Registration) { r.Name = "" }},
		{"under age", func(r *member.Registration) { r.Age = 9 }},
		{"zero cash", func(r *member.Registration) { r.CashAmount = 0 }},
		{"bad plan", func(r *member.Registration) { r.PlanType = "Weekly" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &mockRegistrar{}
			r := validRegistration()
			tt.mutate(&r)

			if _, err := ExecuteRegisterMember(context.Background(), RegisterMemberInput{Registration: r}, RegisterMemberDeps{Backend: reg}); err == nil {
				t.Fatal("expected validation error")
			}
			if reg.calls != 0 {
				t.Errorf("backend called %d times for invalid registration", reg.calls)
			}
		})
	}
}

// TestExecuteRegisterMember_BackendFailure surfaces the backend error.
func TestExecuteRegisterMember_BackendFailure(t *testing.T) {
	wantErr := errors.New("backend returned 409: contact already registered")
	reg := &mockRegistrar{err: wantErr}

	if _, err := ExecuteRegisterMember(context.Background(), RegisterMemberInput{Registration: validRegistration()}, RegisterMemberDeps{Backend: reg}); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}
