package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)

	All(w http.ResponseWriter, r *http.Request)
	EmployeeHistory(w http.ResponseWriter, r *http.Request)
	TeamSummary(w http.ResponseWriter, r *http.Request)
	TodayTeamSnapshot(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// queryPtr returns a pointer to the named query parameter, nil when absent.
func queryPtr(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	record, err := h.attendanceService.CheckIn(r.Context(), userID)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	record, err := h.attendanceService.CheckOut(r.Context(), userID)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// MyHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	records, err := h.attendanceService.MyHistory(r.Context(), userID, attendance.HistoryFilter{
		Month: queryPtr(r, "month"),
	})
	if err != nil {
		slog.Error("MyHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// MySummary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	summary, err := h.attendanceService.MySummary(r.Context(), userID, attendance.HistoryFilter{
		Month: queryPtr(r, "month"),
	})
	if err != nil {
		slog.Error("MySummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// TodayStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	record, err := h.attendanceService.TodayStatus(r.Context(), userID)
	if err != nil {
		slog.Error("TodayStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// No record yet today reads as an explicit not-marked payload rather
	// than a 404.
	if record == nil {
		response.Success(w, map[string]interface{}{"marked": false})
		return
	}

	response.Success(w, record)
}

// All implements AttendanceHandler.
func (h *AttendanceHandlerImpl) All(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.All(r.Context(), attendance.ListFilter{
		Date:         queryPtr(r, "date"),
		Status:       queryPtr(r, "status"),
		EmployeeCode: queryPtr(r, "employee_code"),
	})
	if err != nil {
		slog.Error("All service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// EmployeeHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	employeeCode := chi.URLParam(r, "employeeCode")

	records, err := h.attendanceService.EmployeeHistory(r.Context(), employeeCode, attendance.HistoryFilter{
		Month: queryPtr(r, "month"),
	})
	if err != nil {
		slog.Error("EmployeeHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// TeamSummary implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.attendanceService.TeamSummary(r.Context(), attendance.HistoryFilter{
		Month: queryPtr(r, "month"),
	})
	if err != nil {
		slog.Error("TeamSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// TodayTeamSnapshot implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TodayTeamSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.attendanceService.TodayTeamSnapshot(r.Context())
	if err != nil {
		slog.Error("TodayTeamSnapshot service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}

// Report implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.Report(r.Context(), attendance.ReportFilter{
		StartDate:    queryPtr(r, "start_date"),
		EndDate:      queryPtr(r, "end_date"),
		EmployeeCode: queryPtr(r, "employee_code"),
	})
	if err != nil {
		slog.Error("Report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
