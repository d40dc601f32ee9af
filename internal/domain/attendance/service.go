package attendance

import "context"

// AttendanceService covers both the employee self-service operations and the
// manager-wide views.
type AttendanceService interface {
	// Employee operations, scoped to the authenticated user.
	CheckIn(ctx context.Context, userID string) (RecordResponse, error)
	CheckOut(ctx context.Context, userID string) (RecordResponse, error)
	MyHistory(ctx context.Context, userID string, filter HistoryFilter) ([]RecordResponse, error)
	MySummary(ctx context.Context, userID string, filter HistoryFilter) (Summary, error)
	TodayStatus(ctx context.Context, userID string) (*RecordResponse, error)

	// Manager operations, gated by role middleware at the HTTP layer.
	All(ctx context.Context, filter ListFilter) ([]RecordResponse, error)
	EmployeeHistory(ctx context.Context, employeeCode string, filter HistoryFilter) ([]RecordResponse, error)
	TeamSummary(ctx context.Context, filter HistoryFilter) (TeamSummaryResponse, error)
	TodayTeamSnapshot(ctx context.Context) (TodaySnapshotResponse, error)
	Report(ctx context.Context, filter ReportFilter) ([]RecordResponse, error)
}
