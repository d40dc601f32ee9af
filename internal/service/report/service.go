package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/report"
	"github.com/attendly/attendly-backend-go/internal/pkg/clock"
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	clock             clock.Clock
}

func NewReportService(attendanceService attendance.AttendanceService, clk clock.Clock) report.ReportService {
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		clock:             clk,
	}
}

// ExportCSV implements report.ReportService. The export carries the exact
// rows of the JSON report under a fixed header; empty results still produce
// a header-only file.
func (s *ReportServiceImpl) ExportCSV(ctx context.Context, req report.ExportRequest) (report.ExportResult, error) {
	rows, err := s.attendanceService.Report(ctx, req)
	if err != nil {
		return report.ExportResult{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(report.CSVColumns); err != nil {
		return report.ExportResult{}, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			deref(row.EmployeeCode),
			deref(row.EmployeeName),
			deref(row.EmployeeEmail),
			deref(row.Department),
			row.Date,
			row.Status,
			deref(row.CheckInTime),
			deref(row.CheckOutTime),
			strconv.FormatFloat(row.TotalHours, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return report.ExportResult{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return report.ExportResult{}, fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("attendance-report-%s.csv", attendance.DateOf(s.clock.Now()))

	return report.ExportResult{
		Filename: filename,
		Data:     buf.Bytes(),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
