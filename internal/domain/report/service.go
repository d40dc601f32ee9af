package report

import "context"

// ReportService renders attendance data into downloadable formats.
type ReportService interface {
	ExportCSV(ctx context.Context, req ExportRequest) (ExportResult, error)
}
