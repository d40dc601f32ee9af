package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/clock"
)

// DashboardCache is the slice of the cache layer the write paths need. A
// successful check-in or check-out drops the day's cached manager dashboard.
type DashboardCache interface {
	Invalidate(ctx context.Context, key string) error
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	dashCache   DashboardCache
	clock       clock.Clock
	officeStart attendance.OfficeStart
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	dashCache DashboardCache,
	clk clock.Clock,
	officeStart attendance.OfficeStart,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		dashCache:            dashCache,
		clock:                clk,
		officeStart:          officeStart,
	}
}

// invalidateDashboards is best-effort, a miss just means a dashboard served
// from cache until its TTL runs out.
func (a *AttendanceServiceImpl) invalidateDashboards(ctx context.Context, date string) {
	if a.dashCache == nil {
		return
	}
	_ = a.dashCache.Invalidate(ctx, dashboard.ManagerCacheKey(date))
}

// CheckIn implements attendance.AttendanceService. The record's date is the
// local calendar day of the server clock; at most one record per day exists,
// whether created here or by the absence backfill.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	now := a.clock.Now()
	today := attendance.DateOf(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil && existing.CheckInTime != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.ClassifyCheckIn(now, a.officeStart)

	// A backfilled absent record for today is taken over by the real
	// check-in rather than duplicated.
	if existing != nil {
		existing.CheckInTime = &now
		existing.Status = status
		if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
		existing.UpdatedAt = now
		a.invalidateDashboards(ctx, today)
		return attendance.ToResponse(*existing), nil
	}

	record := attendance.Attendance{
		UserID:      userID,
		Date:        today,
		CheckInTime: &now,
		Status:      status,
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	a.invalidateDashboards(ctx, today)
	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Requires an open
// check-in for today; worked hours are derived from the pair of instants.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	now := a.clock.Now()
	today := attendance.DateOf(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing == nil || existing.CheckInTime == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOutTime != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	existing.CheckOutTime = &now
	existing.TotalHours = attendance.WorkedHours(*existing.CheckInTime, now)

	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	existing.UpdatedAt = now
	a.invalidateDashboards(ctx, today)
	return attendance.ToResponse(*existing), nil
}

// MyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.monthRecords(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return attendance.ToResponses(records), nil
}

// MySummary implements attendance.AttendanceService. Defaults to the current
// month when no month filter is given.
func (a *AttendanceServiceImpl) MySummary(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.Summary, error) {
	if err := filter.Validate(); err != nil {
		return attendance.Summary{}, err
	}

	if filter.Month == nil || *filter.Month == "" {
		month := attendance.MonthPrefixOf(attendance.DateOf(a.clock.Now()))
		filter.Month = &month
	}

	records, err := a.monthRecords(ctx, userID, filter)
	if err != nil {
		return attendance.Summary{}, err
	}

	return attendance.Summarize(records), nil
}

// TodayStatus implements attendance.AttendanceService. A nil response means
// no record exists yet today.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context, userID string) (*attendance.RecordResponse, error) {
	today := attendance.DateOf(a.clock.Now())

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := attendance.ToResponse(*record)
	return &resp, nil
}

// All implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) All(ctx context.Context, filter attendance.ListFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repoFilter := attendance.Filter{
		Date:         filter.Date,
		Status:       filter.Status,
		SortDateDesc: true,
	}

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		u, err := a.UserRepository.GetByEmployeeCode(ctx, *filter.EmployeeCode)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return []attendance.RecordResponse{}, nil
			}
			return nil, fmt.Errorf("failed to resolve employee code: %w", err)
		}
		repoFilter.UserID = &u.ID
	}

	records, err := a.AttendanceRepository.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	return attendance.ToResponses(records), nil
}

// EmployeeHistory implements attendance.AttendanceService. An unknown
// employee code yields an empty history, not an error.
func (a *AttendanceServiceImpl) EmployeeHistory(ctx context.Context, employeeCode string, filter attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	u, err := a.UserRepository.GetByEmployeeCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return []attendance.RecordResponse{}, nil
		}
		return nil, fmt.Errorf("failed to resolve employee code: %w", err)
	}

	records, err := a.monthRecords(ctx, u.ID, filter)
	if err != nil {
		return nil, err
	}

	return attendance.ToResponses(records), nil
}

// TeamSummary implements attendance.AttendanceService. Aggregates the whole
// company for the given month, with a per-department status breakdown.
func (a *AttendanceServiceImpl) TeamSummary(ctx context.Context, filter attendance.HistoryFilter) (attendance.TeamSummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.TeamSummaryResponse{}, err
	}

	repoFilter := attendance.Filter{}
	if filter.Month != nil && *filter.Month != "" {
		repoFilter.MonthPrefix = filter.Month
	} else {
		month := attendance.MonthPrefixOf(attendance.DateOf(a.clock.Now()))
		repoFilter.MonthPrefix = &month
	}

	records, err := a.AttendanceRepository.List(ctx, repoFilter)
	if err != nil {
		return attendance.TeamSummaryResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	summary := attendance.Summarize(records)

	return attendance.TeamSummaryResponse{
		TotalRecords:   summary.TotalDays,
		Present:        summary.Present,
		Late:           summary.Late,
		HalfDay:        summary.HalfDay,
		Absent:         summary.Absent,
		DepartmentWise: attendance.DepartmentBreakdown(records),
	}, nil
}

// TodayTeamSnapshot implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayTeamSnapshot(ctx context.Context) (attendance.TodaySnapshotResponse, error) {
	today := attendance.DateOf(a.clock.Now())

	records, err := a.AttendanceRepository.List(ctx, attendance.Filter{Date: &today})
	if err != nil {
		return attendance.TodaySnapshotResponse{}, fmt.Errorf("failed to list today's attendances: %w", err)
	}

	snap := attendance.PartitionDay(records)

	return attendance.TodaySnapshotResponse{
		TotalRecords: snap.TotalRecords,
		Present:      attendance.ToResponses(snap.Present),
		Absent:       attendance.ToResponses(snap.Absent),
	}, nil
}

// Report implements attendance.AttendanceService. Date bounds are inclusive;
// an unknown employee code yields an empty report.
func (a *AttendanceServiceImpl) Report(ctx context.Context, filter attendance.ReportFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repoFilter := attendance.Filter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		u, err := a.UserRepository.GetByEmployeeCode(ctx, *filter.EmployeeCode)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return []attendance.RecordResponse{}, nil
			}
			return nil, fmt.Errorf("failed to resolve employee code: %w", err)
		}
		repoFilter.UserID = &u.ID
	}

	records, err := a.AttendanceRepository.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	return attendance.ToResponses(records), nil
}

// monthRecords lists one user's records, optionally narrowed to a month,
// newest first.
func (a *AttendanceServiceImpl) monthRecords(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, error) {
	repoFilter := attendance.Filter{
		UserID:       &userID,
		SortDateDesc: true,
	}
	if filter.Month != nil && *filter.Month != "" {
		repoFilter.MonthPrefix = filter.Month
	}

	records, err := a.AttendanceRepository.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	return records, nil
}
