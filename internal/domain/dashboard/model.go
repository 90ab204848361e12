package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// MaxRenewalAlerts is how many upcoming renewals the dashboard shows before
// collapsing the rest into a "+N more" indicator.
const MaxRenewalAlerts = 3

// Stats is the aggregate snapshot the backend computes. Fetched once per
// dashboard visit; never updated incrementally.
type Stats struct {
	MemberStats     MemberStats
	FinancialStats  FinancialStats
	AttendanceStats AttendanceStats
	Alerts          Alerts
}

// MemberStats counts members by lifecycle state.
type MemberStats struct {
	TotalMembers   int
	ActiveMembers  int
	ExpiredMembers int
}

// FinancialStats carries the income figures.
type FinancialStats struct {
	TotalMonthlyIncome float64
}

// AttendanceStats carries today's check-in count.
type AttendanceStats struct {
	DailyAttendanceCount int
}

// Alerts carries the renewal warnings.
type Alerts struct {
	UpcomingRenewals []RenewalAlert
}

// RenewalAlert identifies one member whose paid period is about to end.
type RenewalAlert struct {
	MemberID    string
	Name        string
	RenewalDate time.Time
}

// Due returns the renewal date in the dashboard's display format.
func (a RenewalAlert) Due() string {
	return a.RenewalDate.Local().Format("Mon Jan 2 2006")
}

// TopRenewals returns at most MaxRenewalAlerts of the soonest renewals.
// PRE: UpcomingRenewals is sorted soonest-first by the backend
// POST: returned slice shares backing storage with the snapshot
func (s Stats) TopRenewals() []RenewalAlert {
	if len(s.Alerts.UpcomingRenewals) <= MaxRenewalAlerts {
		return s.Alerts.UpcomingRenewals
	}
	return s.Alerts.UpcomingRenewals[:MaxRenewalAlerts]
}

// MoreRenewals returns how many renewals are hidden behind the "+N more"
// indicator, or 0 when everything fits.
func (s Stats) MoreRenewals() int {
	if n := len(s.Alerts.UpcomingRenewals) - MaxRenewalAlerts; n > 0 {
		return n
	}
	return 0
}

// MonthlyIncomeDisplay formats the monthly income as a localized rupee string.
func (s Stats) MonthlyIncomeDisplay() string {
	return FormatINR(s.FinancialStats.TotalMonthlyIncome)
}

// FormatINR renders an amount with the Indian digit grouping the original
// panel used (en-IN locale): the last three digits form one group, every two
// digits after that form another, e.g. 1234567.5 -> "₹12,34,567.50". Whole
// amounts drop the fraction.
func FormatINR(amount float64) string {
	negative := amount < 0

	// Work in whole paise so a fraction that rounds up to 1.00 carries
	// into the rupee part instead of printing a three-digit fraction.
	paise := int64(math.Round(math.Abs(amount) * 100))
	whole := paise / 100
	frac := paise % 100

	digits := fmt.Sprintf("%d", whole)
	var groups []string
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		groups = append(groups, digits[len(digits)-3:])
		for len(head) > 2 {
			groups = append(groups, head[len(head)-2:])
			head = head[:len(head)-2]
		}
		groups = append(groups, head)
		for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
			groups[i], groups[j] = groups[j], groups[i]
		}
		digits = strings.Join(groups, ",")
	}

	out := "₹" + digits
	if frac > 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if negative {
		out = "-" + out
	}
	return out
}
