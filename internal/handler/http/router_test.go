package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendly-backend-go/internal/domain/report"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
)

// Stubbed services; the tests here exercise routing, token verification and
// role gating rather than business logic.

type stubAttendanceService struct{}

func (stubAttendanceService) CheckIn(context.Context, string) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{Status: "present", Date: "2025-06-09"}, nil
}
func (stubAttendanceService) CheckOut(context.Context, string) (attendance.RecordResponse, error) {
	return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
}
func (stubAttendanceService) MyHistory(context.Context, string, attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	return []attendance.RecordResponse{}, nil
}
func (stubAttendanceService) MySummary(context.Context, string, attendance.HistoryFilter) (attendance.Summary, error) {
	return attendance.Summary{}, nil
}
func (stubAttendanceService) TodayStatus(context.Context, string) (*attendance.RecordResponse, error) {
	return nil, nil
}
func (stubAttendanceService) All(context.Context, attendance.ListFilter) ([]attendance.RecordResponse, error) {
	return []attendance.RecordResponse{}, nil
}
func (stubAttendanceService) EmployeeHistory(context.Context, string, attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	return []attendance.RecordResponse{}, nil
}
func (stubAttendanceService) TeamSummary(context.Context, attendance.HistoryFilter) (attendance.TeamSummaryResponse, error) {
	return attendance.TeamSummaryResponse{}, nil
}
func (stubAttendanceService) TodayTeamSnapshot(context.Context) (attendance.TodaySnapshotResponse, error) {
	return attendance.TodaySnapshotResponse{}, nil
}
func (stubAttendanceService) Report(context.Context, attendance.ReportFilter) ([]attendance.RecordResponse, error) {
	return []attendance.RecordResponse{}, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, nil
}
func (stubAuthService) Login(context.Context, auth.LoginRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}
func (stubAuthService) RefreshToken(context.Context, auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	return auth.AccessTokenResponse{}, nil
}
func (stubAuthService) Logout(context.Context, auth.RefreshTokenRequest) error { return nil }
func (stubAuthService) Me(context.Context, string) (user.ProfileResponse, error) {
	return user.ProfileResponse{Email: "ana@example.com"}, nil
}
func (stubAuthService) LoginWithGoogle(context.Context) (string, error) {
	return "https://accounts.google.com/o/oauth2/auth", nil
}
func (stubAuthService) OAuthCallbackGoogle(context.Context, string, string) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidToken
}

type stubDashboardService struct{}

func (stubDashboardService) EmployeeDashboard(context.Context, string) (dashboard.EmployeeDashboardResponse, error) {
	return dashboard.EmployeeDashboardResponse{}, nil
}
func (stubDashboardService) ManagerDashboard(context.Context) (dashboard.ManagerDashboardResponse, error) {
	return dashboard.ManagerDashboardResponse{}, nil
}

type stubReportService struct{}

func (stubReportService) ExportCSV(context.Context, report.ExportRequest) (report.ExportResult, error) {
	return report.ExportResult{
		Filename: "attendance-report-2025-06-09.csv",
		Data:     []byte("employeeId,name,email,department,date,status,checkInTime,checkOutTime,totalHours\n"),
	}, nil
}

func newTestRouter(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()

	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")

	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, Env: "test"},
		jwtService,
		NewAuthHandler(stubAuthService{}, jwtService),
		NewAttendanceHandler(stubAttendanceService{}),
		NewDashboardHandler(stubDashboardService{}),
		NewReportHandler(stubReportService{}),
	)
	return router, jwtService
}

func accessToken(t *testing.T, jwtService jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken("u1", "ana@example.com", "EMP001", role)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/attendance/me",
		"/api/v1/auth/me",
		"/api/v1/dashboard/me",
	} {
		rec := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	refresh, _, err := jwtService.GenerateRefreshToken("u1")
	require.NoError(t, err)

	rec := doRequest(router, http.MethodGet, "/api/v1/attendance/me", refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployeeCannotReachManagerRoutes(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessToken(t, jwtService, user.RoleEmployee)

	for _, path := range []string{
		"/api/v1/attendance/",
		"/api/v1/attendance/summary",
		"/api/v1/attendance/report",
		"/api/v1/attendance/report/export",
		"/api/v1/dashboard/team",
	} {
		rec := doRequest(router, http.MethodGet, path, token)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestManagerReachesManagerRoutes(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessToken(t, jwtService, user.RoleManager)

	for _, path := range []string{
		"/api/v1/attendance/summary",
		"/api/v1/attendance/employee/EMP001",
		"/api/v1/dashboard/team",
	} {
		rec := doRequest(router, http.MethodGet, path, token)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCheckInRoute(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessToken(t, jwtService, user.RoleEmployee)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/check-in", token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "present", body.Data.Status)
}

func TestCheckOutErrorMapsToBadRequest(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessToken(t, jwtService, user.RoleEmployee)

	rec := doRequest(router, http.MethodPost, "/api/v1/attendance/check-out", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSVHeaders(t *testing.T) {
	router, jwtService := newTestRouter(t)
	token := accessToken(t, jwtService, user.RoleManager)

	rec := doRequest(router, http.MethodGet, "/api/v1/attendance/report/export", token)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-report-2025-06-09.csv")
	assert.Contains(t, rec.Body.String(), "employeeId,name")
}

func TestLoginFailureIsUnauthorized(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ana@example.com","password":"wrongpassword"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
