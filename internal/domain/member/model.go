package member

import (
	"errors"
	"strings"
)

// Business rule constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"

	PlanMonthly   = "Monthly"
	PlanQuarterly = "Quarterly"
	PlanAnnual    = "Annual"

	// MinAge is the youngest age the gym accepts.
	MinAge = 10
)

// Domain errors
var (
	ErrNotFound = errors.New("member not found")
)

// Genders lists the accepted gender values in form order.
func Genders() []string {
	return []string{GenderMale, GenderFemale, GenderOther}
}

// PlanTypes lists the accepted plan types in form order.
func PlanTypes() []string {
	return []string{PlanMonthly, PlanQuarterly, PlanAnnual}
}

// Member holds state for the concept. The ID is assigned by the backend
// service; the panel never invents one.
type Member struct {
	ID             string
	Name           string
	Age            int
	Gender         string
	Contact        string
	PlanType       string
	CashAmountPaid float64
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name and Contact must not be empty, Age >= MinAge
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("member name cannot be empty")
	}
	if strings.TrimSpace(m.Contact) == "" {
		return errors.New("member contact cannot be empty")
	}
	if m.Age < MinAge {
		return errors.New("member age must be at least 10")
	}
	if !ValidGender(m.Gender) {
		return errors.New("gender must be 'Male', 'Female', or 'Other'")
	}
	if !ValidPlanType(m.PlanType) {
		return errors.New("plan type must be 'Monthly', 'Quarterly', or 'Annual'")
	}
	return nil
}

// ValidGender reports whether g is an accepted gender value.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// ValidPlanType reports whether p is an accepted plan type.
func ValidPlanType(p string) bool {
	return p == PlanMonthly || p == PlanQuarterly || p == PlanAnnual
}

// Registration carries the fields collected by the new-member form. Age and
// CashAmount arrive already coerced to numeric types; coercion failures are
// rejected at the form layer before this struct is built.
type Registration struct {
	Name       string
	Age        int
	Gender     string
	Contact    string
	PlanType   string
	CashAmount float64
}

// Validate checks the registration against the same rules the backend applies.
// PRE: numeric fields are already coerced
// POST: returns nil if valid, error describing the first violation otherwise
func (r *Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Contact) == "" {
		return errors.New("contact is required")
	}
	if r.Age < MinAge {
		return errors.New("age must be at least 10")
	}
	if !ValidGender(r.Gender) {
		return errors.New("gender must be 'Male', 'Female', or 'Other'")
	}
	if !ValidPlanType(r.PlanType) {
		return errors.New("plan type must be 'Monthly', 'Quarterly', or 'Annual'")
	}
	if r.CashAmount < 1 {
		return errors.New("cash amount must be at least 1")
	}
	return nil
}

// Defaults returns a Registration preset with the form's default selections.
func Defaults() Registration {
	return Registration{Gender: GenderMale, PlanType: PlanMonthly}
}
