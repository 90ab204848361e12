package projections

import (
	"context"

	"gymdesk/internal/domain/dashboard"
)

// DashboardAPI defines the backend call needed by the dashboard projection.
type DashboardAPI interface {
	DashboardStats(ctx context.Context) (dashboard.Stats, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Backend DashboardAPI
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Stats dashboard.Stats
}

// QueryGetDashboard fetches one aggregate snapshot for the stat cards,
// income figure, and renewal alerts. The snapshot is fetched fresh on
// every dashboard visit; nothing is cached.
// PRE: the auth gate is open
// POST: returns the backend's snapshot or the fetch error
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	stats, err := deps.Backend.DashboardStats(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	return DashboardResult{Stats: stats}, nil
}
