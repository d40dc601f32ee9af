package dashboard

import (
	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
)

// ========== EMPLOYEE DASHBOARD ==========

// EmployeeDashboardResponse is the combined self-service dashboard payload.
type EmployeeDashboardResponse struct {
	Today        *attendance.RecordResponse  `json:"today"`
	MonthSummary attendance.Summary          `json:"monthSummary"`
	Recent       []attendance.RecordResponse `json:"recent"` // latest 7 records
	Month        string                      `json:"month"`  // "YYYY-MM"
}

// ========== MANAGER DASHBOARD ==========

// ManagerDashboardResponse aggregates company-wide stats for the manager
// landing page.
type ManagerDashboardResponse struct {
	TotalEmployees  int64                                 `json:"totalEmployees"`
	TodayStats      TodayStatsResponse                    `json:"todayStats"`
	LateArrivals    []attendance.RecordResponse           `json:"lateArrivals"`
	AbsentEmployees []attendance.RecordResponse           `json:"absentEmployees"`
	WeeklyTrend     map[string]int                        `json:"weeklyTrend"`
	DepartmentWise  map[string]attendance.DeptCounts      `json:"departmentWise"`
	Breakdown       map[string]attendance.StatusBreakdown `json:"breakdown"`
	Date            string                                `json:"date"` // "YYYY-MM-DD"
}

// ManagerCacheKey names the cached manager dashboard for one calendar day.
// Shared between the reader that fills the cache and the writers that
// invalidate it.
func ManagerCacheKey(date string) string {
	return "dashboard:manager:" + date
}

// TodayStatsResponse is today's headcount split for the manager dashboard.
type TodayStatsResponse struct {
	CheckedIn int `json:"checkedIn"`
	Present   int `json:"present"`
	Late      int `json:"late"`
	HalfDay   int `json:"halfDay"`
	Absent    int `json:"absent"`
	NotMarked int `json:"notMarked"` // employees with no record yet today
}
