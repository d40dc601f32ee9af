package report

import (
	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
)

// CSVColumns is the fixed export header, in order.
var CSVColumns = []string{
	"employeeId",
	"name",
	"email",
	"department",
	"date",
	"status",
	"checkInTime",
	"checkOutTime",
	"totalHours",
}

// ExportRequest mirrors the report filter; both endpoints accept the same
// query parameters.
type ExportRequest = attendance.ReportFilter

// ExportResult carries the rendered CSV plus the filename the handler should
// suggest in Content-Disposition.
type ExportResult struct {
	Filename string
	Data     []byte
}
