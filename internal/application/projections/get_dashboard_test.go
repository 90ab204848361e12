package projections

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/domain/dashboard"
)

type mockDashboardAPI struct {
	stats dashboard.Stats
	err   error
}

func (m *mockDashboardAPI) DashboardStats(_ context.Context) (dashboard.Stats, error) {
	return m.stats, m.err
}

// TestQueryGetDashboard returns the backend snapshot unchanged.
func TestQueryGetDashboard(t *testing.T) {
	want := dashboard.Stats{
		MemberStats:     dashboard.MemberStats{TotalMembers: 42, ActiveMembers: 30, ExpiredMembers: 12},
		FinancialStats:  dashboard.FinancialStats{TotalMonthlyIncome: 45000},
		AttendanceStats: dashboard.AttendanceStats{DailyAttendanceCount: 7},
	}

	result, err := QueryGetDashboard(context.Background(), GetDashboardDeps{Backend: &mockDashboardAPI{stats: want}})
	if err != nil {
		t.Fatalf("QueryGetDashboard failed: %v", err)
	}
	if result.Stats.MemberStats.TotalMembers != 42 {
		t.Errorf("stats = %+v", result.Stats)
	}
}

// TestQueryGetDashboard_Failure surfaces the fetch error; the dashboard
// page shows it instead of stale numbers.
func TestQueryGetDashboard_Failure(t *testing.T) {
	wantErr := errors.New("backend unreachable")
	if _, err := QueryGetDashboard(context.Background(), GetDashboardDeps{Backend: &mockDashboardAPI{err: wantErr}}); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}
