package dashboard

import "context"

// DashboardService assembles the combined dashboard payloads. Both views fan
// out their underlying queries concurrently and may be served from cache.
type DashboardService interface {
	EmployeeDashboard(ctx context.Context, userID string) (EmployeeDashboardResponse, error)
	ManagerDashboard(ctx context.Context) (ManagerDashboardResponse, error)
}
