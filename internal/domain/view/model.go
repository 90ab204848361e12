package view

// View names one of the panel's five screens. Exactly one view renders at a
// time; the nav marks the active one.
type View string

const (
	Dashboard View = "dashboard"
	AddMember View = "addMember"
	Scanner   View = "scanner"
	Payment   View = "payment"
	Members   View = "members"
)

// Default is the view shown after login.
const Default = Dashboard

// All lists the views in nav order.
func All() []View {
	return []View{Dashboard, AddMember, Scanner, Payment, Members}
}

// Valid reports whether name is a known view.
func Valid(name string) bool {
	switch View(name) {
	case Dashboard, AddMember, Scanner, Payment, Members:
		return true
	}
	return false
}

// Path returns the route the view is served at.
func (v View) Path() string {
	switch v {
	case AddMember:
		return "/members/new"
	case Scanner:
		return "/scanner"
	case Payment:
		return "/payments"
	case Members:
		return "/members"
	default:
		return "/dashboard"
	}
}

// Label returns the nav button text.
func (v View) Label() string {
	switch v {
	case AddMember:
		return "Add New Member"
	case Scanner:
		return "Attendance Scanner"
	case Payment:
		return "Record Payment"
	case Members:
		return "Manage Members"
	default:
		return "Dashboard"
	}
}
