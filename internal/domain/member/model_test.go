package member_test

import (
	"testing"

	"gymdesk/internal/domain/member"
)

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	tests := []struct {
		name    string
		member  member.Member
		wantErr bool
	}{
		{
			name: "valid member",
			member: member.Member{
				ID:             "GM-123456",
				Name:           "John Doe",
				Age:            28,
				Gender:         member.GenderMale,
				Contact:        "9990001111",
				PlanType:       member.PlanMonthly,
				CashAmountPaid: 500,
			},
			wantErr: false,
		},
		{
			name: "empty name",
			member: member.Member{
				Age:      28,
				Gender:   member.GenderFemale,
				Contact:  "9990001111",
				PlanType: member.PlanAnnual,
			},
			wantErr: true,
		},
		{
			name: "empty contact",
			member: member.Member{
				Name:     "Asha",
				Age:      28,
				Gender:   member.GenderFemale,
				PlanType: member.PlanMonthly,
			},
			wantErr: true,
		},
		{
			name: "under age",
			member: member.Member{
				Name:     "Kid",
				Age:      9,
				Gender:   member.GenderOther,
				Contact:  "9990001111",
				PlanType: member.PlanMonthly,
			},
			wantErr: true,
		},
		{
			name: "bad gender",
			member: member.Member{
				Name:     "Asha",
				Age:      28,
				Gender:   "unknown",
				Contact:  "9990001111",
				PlanType: member.PlanMonthly,
			},
			wantErr: true,
		},
		{
			name: "bad plan type",
			member: member.Member{
				Name:     "Asha",
				Age:      28,
				Gender:   member.GenderFemale,
				Contact:  "9990001111",
				PlanType: "Weekly",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestRegistrationValidation tests validation of the new-member form payload.
func TestRegistrationValidation(t *testing.T) {
	valid := member.Registration{
		Name:       "Asha",
		Age:        28,
		Gender:     member.GenderFemale,
		Contact:    "9990001111",
		PlanType:   member.PlanMonthly,
		CashAmount: 500,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid registration rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*member.Registration)
	}{
		{"empty name", func(r *member.Registration) { r.Name = "  " }},
		{"empty contact", func(r *member.Registration) { r.Contact = "" }},
		{"under age", func(r *member.Registration) { r.Age = member.MinAge - 1 }},
		{"bad gender", func(r *member.Registration) { r.Gender = "N/A" }},
		{"bad plan", func(r *member.Registration) { r.PlanType = "Daily" }},
		{"zero cash", func(r *member.Registration) { r.CashAmount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Errorf("expected validation error, got nil")
			}
		})
	}
}

// TestDefaults verifies the form default selections.
func TestDefaults(t *testing.T) {
	d := member.Defaults()
	if d.Gender != member.GenderMale {
		t.Errorf("default gender = %q, want %q", d.Gender, member.GenderMale)
	}
	if d.PlanType != member.PlanMonthly {
		t.Errorf("default plan = %q, want %q", d.PlanType, member.PlanMonthly)
	}
}
