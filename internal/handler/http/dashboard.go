package http

import (
	"log/slog"
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendly-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Employee(w http.ResponseWriter, r *http.Request)
	Manager(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Employee implements DashboardHandler.
func (h *DashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	resp, err := h.dashboardService.EmployeeDashboard(r.Context(), userID)
	if err != nil {
		slog.Error("EmployeeDashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Manager implements DashboardHandler.
func (h *DashboardHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dashboardService.ManagerDashboard(r.Context())
	if err != nil {
		slog.Error("ManagerDashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
