package http

import (
	"log/slog"
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/report"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// ExportCSV implements ReportHandler. Streams a CSV download with the same
// filters as the JSON report.
func (h *ReportHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.ExportCSV(r.Context(), report.ExportRequest{
		StartDate:    queryPtr(r, "start_date"),
		EndDate:      queryPtr(r, "end_date"),
		EmployeeCode: queryPtr(r, "employee_code"),
	})
	if err != nil {
		slog.Error("ExportCSV service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}
