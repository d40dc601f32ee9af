package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/cache"
	"github.com/attendly/attendly-backend-go/internal/pkg/clock"
)

const recentRecordsLimit = 7

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	cache          *cache.Cache
	clock          clock.Clock
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	c *cache.Cache,
	clk clock.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		cache:          c,
		clock:          clk,
	}
}

// EmployeeDashboard implements dashboard.DashboardService. The three widgets
// are independent queries, fetched concurrently.
func (s *DashboardServiceImpl) EmployeeDashboard(ctx context.Context, userID string) (dashboard.EmployeeDashboardResponse, error) {
	now := s.clock.Now()
	today := attendance.DateOf(now)
	month := attendance.MonthPrefixOf(today)

	var (
		todayRecord  *attendance.Attendance
		monthRecords []attendance.Attendance
		recent       []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		todayRecord, err = s.attendanceRepo.GetByUserAndDate(gctx, userID, today)
		return err
	})

	g.Go(func() error {
		var err error
		monthRecords, err = s.attendanceRepo.List(gctx, attendance.Filter{
			UserID:      &userID,
			MonthPrefix: &month,
		})
		return err
	})

	g.Go(func() error {
		var err error
		recent, err = s.attendanceRepo.List(gctx, attendance.Filter{
			UserID:       &userID,
			SortDateDesc: true,
			Limit:        recentRecordsLimit,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, fmt.Errorf("failed to build employee dashboard: %w", err)
	}

	resp := dashboard.EmployeeDashboardResponse{
		MonthSummary: attendance.Summarize(monthRecords),
		Recent:       attendance.ToResponses(recent),
		Month:        month,
	}
	if todayRecord != nil {
		r := attendance.ToResponse(*todayRecord)
		resp.Today = &r
	}

	return resp, nil
}

// ManagerDashboard implements dashboard.DashboardService. The aggregate is
// cached briefly; cache failures fall through to the live queries.
func (s *DashboardServiceImpl) ManagerDashboard(ctx context.Context) (dashboard.ManagerDashboardResponse, error) {
	now := s.clock.Now()
	today := attendance.DateOf(now)

	var cached dashboard.ManagerDashboardResponse
	if hit, err := s.cache.Get(ctx, dashboard.ManagerCacheKey(today), &cached); err == nil && hit {
		return cached, nil
	}

	var (
		totalEmployees int64
		todayRecords   []attendance.Attendance
		weekRecords    []attendance.Attendance
	)

	weekStart := now.AddDate(0, 0, -6)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		totalEmployees, err = s.userRepo.CountByRole(gctx, user.RoleEmployee)
		return err
	})

	g.Go(func() error {
		var err error
		todayRecords, err = s.attendanceRepo.List(gctx, attendance.Filter{Date: &today})
		return err
	})

	// The trend window is anchored on record creation time, a record
	// corrected outside its original day drops out of the trend.
	g.Go(func() error {
		var err error
		weekRecords, err = s.attendanceRepo.List(gctx, attendance.Filter{
			CreatedFrom: &weekStart,
			CreatedTo:   &now,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.ManagerDashboardResponse{}, fmt.Errorf("failed to build manager dashboard: %w", err)
	}

	todayBreakdown := attendance.Summarize(todayRecords)

	lateArrivals := make([]attendance.Attendance, 0)
	absentEmployees := make([]attendance.Attendance, 0)
	for _, record := range todayRecords {
		switch record.Status {
		case attendance.StatusLate:
			lateArrivals = append(lateArrivals, record)
		case attendance.StatusAbsent:
			absentEmployees = append(absentEmployees, record)
		}
	}

	resp := dashboard.ManagerDashboardResponse{
		TotalEmployees: totalEmployees,
		TodayStats: dashboard.TodayStatsResponse{
			CheckedIn: todayBreakdown.Present + todayBreakdown.Late + todayBreakdown.HalfDay,
			Present:   todayBreakdown.Present,
			Late:      todayBreakdown.Late,
			HalfDay:   todayBreakdown.HalfDay,
			Absent:    todayBreakdown.Absent,
			NotMarked: notMarked(totalEmployees, len(todayRecords)),
		},
		LateArrivals:    attendance.ToResponses(lateArrivals),
		AbsentEmployees: attendance.ToResponses(absentEmployees),
		WeeklyTrend:     attendance.WeeklyTrend(weekRecords),
		DepartmentWise:  attendance.DepartmentRollup(todayRecords),
		Breakdown:       attendance.DepartmentBreakdown(todayRecords),
		Date:            today,
	}

	_ = s.cache.Set(ctx, dashboard.ManagerCacheKey(today), resp)

	return resp, nil
}

func notMarked(totalEmployees int64, marked int) int {
	n := int(totalEmployees) - marked
	if n < 0 {
		return 0
	}
	return n
}
