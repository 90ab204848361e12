package report

import (
	"fmt"
	"strings"
	"time"

	"gymdesk/internal/domain/dashboard"
)

// Document is a generated admin report built from one dashboard snapshot.
// The body is Markdown; the web layer renders or downloads it as-is.
type Document struct {
	Title       string
	Body        string
	GeneratedAt time.Time
}

// Filename returns the download filename for the document.
func (d Document) Filename() string {
	return fmt.Sprintf("gym-report-%s.md", d.GeneratedAt.Format("2006-01"))
}

// Build produces the monthly overview report from a stats snapshot.
// PRE: stats is a snapshot already fetched from the backend
// POST: returns a document whose body lists every stat card figure
func Build(stats dashboard.Stats, now time.Time) Document {
	var b strings.Builder

	title := fmt.Sprintf("Gym Monthly Report - %s", now.Format("January 2006"))
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated %s\n\n", now.Format("Mon Jan 2 2006 3:04 PM"))

	b.WriteString("## Members\n\n")
	fmt.Fprintf(&b, "- Total members: %d\n", stats.MemberStats.TotalMembers)
	fmt.Fprintf(&b, "- Active members: %d\n", stats.MemberStats.ActiveMembers)
	fmt.Fprintf(&b, "- Expired members: %d\n\n", stats.MemberStats.ExpiredMembers)

	b.WriteString("## Income\n\n")
	fmt.Fprintf(&b, "- Revenue collected this month (cash only): %s\n\n", stats.MonthlyIncomeDisplay())

	b.WriteString("## Attendance\n\n")
	fmt.Fprintf(&b, "- Check-ins today: %d\n\n", stats.AttendanceStats.DailyAttendanceCount)

	b.WriteString("## Upcoming renewals\n\n")
	if len(stats.Alerts.UpcomingRenewals) == 0 {
		b.WriteString("No renewals due in the next 7 days.\n")
	} else {
		for _, a := range stats.Alerts.UpcomingRenewals {
			fmt.Fprintf(&b, "- %s (%s), due %s\n", a.Name, a.MemberID, a.Due())
		}
	}

	return Document{Title: title, Body: b.String(), GeneratedAt: now}
}
