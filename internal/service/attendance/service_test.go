package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/clock"
)

// fakeAttendanceRepo keeps records in memory keyed by (user, date), matching
// the store's uniqueness constraint.
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func key(userID, date string) string { return userID + "|" + date }

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	k := key(record.UserID, record.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateRecord
	}
	f.nextID++
	record.ID = string(rune('a' + f.nextID))
	f.records[k] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, date string) (*attendance.Attendance, error) {
	if record, ok := f.records[key(userID, date)]; ok {
		return &record, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Attendance) error {
	k := key(record.UserID, record.Date)
	if _, ok := f.records[k]; !ok {
		return attendance.ErrRecordNotFound
	}
	f.records[k] = record
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	out := make([]attendance.Attendance, 0)
	for _, record := range f.records {
		if filter.UserID != nil && record.UserID != *filter.UserID {
			continue
		}
		if filter.Date != nil && record.Date != *filter.Date {
			continue
		}
		if filter.StartDate != nil && record.Date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && record.Date > *filter.EndDate {
			continue
		}
		if filter.MonthPrefix != nil && attendance.MonthPrefixOf(record.Date) != *filter.MonthPrefix {
			continue
		}
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(_ context.Context, records []attendance.Attendance) error {
	for _, record := range records {
		k := key(record.UserID, record.Date)
		if _, exists := f.records[k]; exists {
			continue
		}
		f.nextID++
		record.ID = string(rune('a' + f.nextID))
		f.records[k] = record
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User // by employee code
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }
func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmployeeCode(_ context.Context, code string) (user.User, error) {
	if u, ok := f.users[code]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}
func (f *fakeUserRepo) CountByRole(_ context.Context, _ user.Role) (int64, error) {
	return int64(len(f.users)), nil
}

func newService(now time.Time) (attendance.AttendanceService, *fakeAttendanceRepo, *fakeUserRepo) {
	attRepo := newFakeAttendanceRepo()
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"EMP001": {ID: "u1", Name: "Ana", EmployeeCode: "EMP001", Department: "Engineering"},
	}}
	svc := NewAttendanceService(attRepo, userRepo, nil, clock.Fixed(now), attendance.DefaultOfficeStart)
	return svc, attRepo, userRepo
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 9, hour, minute, 0, 0, time.UTC)
}

func TestCheckInClassifiesAgainstOfficeStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"on time", at(9, 20), "present"},
		{"within grace", at(9, 34), "present"},
		{"late", at(10, 0), "late"},
		{"half day", at(11, 0), "half-day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(tt.now)

			resp, err := svc.CheckIn(context.Background(), "u1")
			require.NoError(t, err)

			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, "2025-06-09", resp.Date)
			require.NotNil(t, resp.CheckInTime)
			assert.Nil(t, resp.CheckOutTime)
		})
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	svc, _, _ := newService(at(9, 0))

	_, err := svc.CheckIn(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "u1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

// racingRepo hides the existing record from the existence check so the
// create path hits the store's uniqueness constraint, as a concurrent insert
// between the two calls would.
type racingRepo struct {
	*fakeAttendanceRepo
}

func (r *racingRepo) GetByUserAndDate(context.Context, string, string) (*attendance.Attendance, error) {
	return nil, nil
}

func TestCheckInTranslatesDuplicateFromStore(t *testing.T) {
	_, repo, userRepo := newService(at(9, 0))

	repo.records[key("u1", "2025-06-09")] = attendance.Attendance{
		UserID: "u1", Date: "2025-06-09", Status: attendance.StatusPresent,
	}

	svc := NewAttendanceService(&racingRepo{repo}, userRepo, nil, clock.Fixed(at(9, 0)), attendance.DefaultOfficeStart)

	_, err := svc.CheckIn(context.Background(), "u1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInTakesOverBackfilledAbsence(t *testing.T) {
	svc, repo, _ := newService(at(9, 32))

	repo.records[key("u1", "2025-06-09")] = attendance.Attendance{
		ID: "x1", UserID: "u1", Date: "2025-06-09", Status: attendance.StatusAbsent,
	}

	resp, err := svc.CheckIn(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "present", resp.Status)
	assert.Equal(t, "x1", resp.ID)

	stored := repo.records[key("u1", "2025-06-09")]
	assert.Equal(t, attendance.StatusPresent, stored.Status)
	require.NotNil(t, stored.CheckInTime)
}

func TestCheckOutComputesWorkedHours(t *testing.T) {
	checkIn := at(9, 30)
	svc, repo, userRepo := newService(checkIn)

	_, err := svc.CheckIn(context.Background(), "u1")
	require.NoError(t, err)

	later := NewAttendanceService(repo, userRepo, nil, clock.Fixed(at(17, 45)), attendance.DefaultOfficeStart)

	resp, err := later.CheckOut(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 8.25, resp.TotalHours)
	require.NotNil(t, resp.CheckOutTime)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc, _, _ := newService(at(17, 0))

	_, err := svc.CheckOut(context.Background(), "u1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	svc, _, _ := newService(at(9, 0))

	_, err := svc.CheckIn(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), "u1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutAgainstBackfilledAbsence(t *testing.T) {
	svc, repo, _ := newService(at(17, 0))

	repo.records[key("u1", "2025-06-09")] = attendance.Attendance{
		ID: "x1", UserID: "u1", Date: "2025-06-09", Status: attendance.StatusAbsent,
	}

	_, err := svc.CheckOut(context.Background(), "u1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestMySummaryDefaultsToCurrentMonth(t *testing.T) {
	svc, repo, _ := newService(at(12, 0))

	seed := []attendance.Attendance{
		{UserID: "u1", Date: "2025-06-02", Status: attendance.StatusPresent, TotalHours: 8},
		{UserID: "u1", Date: "2025-06-03", Status: attendance.StatusLate, TotalHours: 7.5},
		{UserID: "u1", Date: "2025-05-30", Status: attendance.StatusPresent, TotalHours: 8},
	}
	for _, s := range seed {
		repo.records[key(s.UserID, s.Date)] = s
	}

	summary, err := svc.MySummary(context.Background(), "u1", attendance.HistoryFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 2, summary.TotalDays)
	assert.Equal(t, 15.5, summary.TotalHours)
}

func TestMyHistoryRejectsBadMonth(t *testing.T) {
	svc, _, _ := newService(at(12, 0))

	month := "June-2025"
	_, err := svc.MyHistory(context.Background(), "u1", attendance.HistoryFilter{Month: &month})
	assert.Error(t, err)
}

func TestTodayStatusNilWhenUnmarked(t *testing.T) {
	svc, _, _ := newService(at(8, 0))

	resp, err := svc.TodayStatus(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestEmployeeHistoryUnknownCodeIsEmpty(t *testing.T) {
	svc, _, _ := newService(at(12, 0))

	records, err := svc.EmployeeHistory(context.Background(), "NOPE", attendance.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReportFiltersByRangeAndEmployee(t *testing.T) {
	svc, repo, _ := newService(at(12, 0))

	seed := []attendance.Attendance{
		{UserID: "u1", Date: "2025-06-02", Status: attendance.StatusPresent},
		{UserID: "u1", Date: "2025-06-10", Status: attendance.StatusLate},
		{UserID: "u2", Date: "2025-06-02", Status: attendance.StatusPresent},
	}
	for _, s := range seed {
		repo.records[key(s.UserID, s.Date)] = s
	}

	start, end, code := "2025-06-01", "2025-06-05", "EMP001"
	records, err := svc.Report(context.Background(), attendance.ReportFilter{
		StartDate: &start, EndDate: &end, EmployeeCode: &code,
	})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "2025-06-02", records[0].Date)
	assert.Equal(t, "u1", records[0].UserID)
}

func TestReportInvertedRangeIsEmpty(t *testing.T) {
	svc, repo, _ := newService(at(12, 0))

	repo.records[key("u1", "2025-06-02")] = attendance.Attendance{
		UserID: "u1", Date: "2025-06-02", Status: attendance.StatusPresent,
	}

	start, end := "2025-06-10", "2025-06-01"
	records, err := svc.Report(context.Background(), attendance.ReportFilter{
		StartDate: &start, EndDate: &end,
	})
	require.NoError(t, err)
	assert.Empty(t, records)
}

// recordingCache captures invalidation keys instead of talking to Redis.
type recordingCache struct {
	keys []string
}

func (c *recordingCache) Invalidate(_ context.Context, key string) error {
	c.keys = append(c.keys, key)
	return nil
}

func TestCheckInAndOutInvalidateManagerDashboard(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	userRepo := &fakeUserRepo{users: map[string]user.User{}}
	cache := &recordingCache{}

	svc := NewAttendanceService(attRepo, userRepo, cache, clock.Fixed(at(9, 0)), attendance.DefaultOfficeStart)

	_, err := svc.CheckIn(context.Background(), "u1")
	require.NoError(t, err)

	later := NewAttendanceService(attRepo, userRepo, cache, clock.Fixed(at(17, 0)), attendance.DefaultOfficeStart)
	_, err = later.CheckOut(context.Background(), "u1")
	require.NoError(t, err)

	want := dashboard.ManagerCacheKey("2025-06-09")
	assert.Equal(t, []string{want, want}, cache.keys)
}

func TestTeamSummaryBreakdown(t *testing.T) {
	svc, repo, _ := newService(at(12, 0))

	eng := "Engineering"
	seed := []attendance.Attendance{
		{UserID: "u1", Date: "2025-06-02", Status: attendance.StatusPresent, Department: &eng},
		{UserID: "u2", Date: "2025-06-02", Status: attendance.StatusAbsent},
	}
	for _, s := range seed {
		repo.records[key(s.UserID, s.Date)] = s
	}

	summary, err := svc.TeamSummary(context.Background(), attendance.HistoryFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalRecords)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.DepartmentWise["Engineering"].Present)
	assert.Equal(t, 1, summary.DepartmentWise[attendance.UnknownDepartment].Absent)
}

func TestTodayTeamSnapshot(t *testing.T) {
	svc, repo, _ := newService(at(12, 0))

	seed := []attendance.Attendance{
		{UserID: "u1", Date: "2025-06-09", Status: attendance.StatusLate},
		{UserID: "u2", Date: "2025-06-09", Status: attendance.StatusAbsent},
		{UserID: "u3", Date: "2025-06-08", Status: attendance.StatusPresent},
	}
	for _, s := range seed {
		repo.records[key(s.UserID, s.Date)] = s
	}

	snap, err := svc.TodayTeamSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.TotalRecords)
	assert.Len(t, snap.Present, 1)
	assert.Len(t, snap.Absent, 1)
}
