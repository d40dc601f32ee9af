package attendance

import (
	"time"

	"github.com/attendly/attendly-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// RecordResponse is the JSON shape of an attendance record.
type RecordResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       string  `json:"status"`
	TotalHours   float64 `json:"total_hours"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`

	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeEmail *string `json:"employee_email,omitempty"`
	EmployeeCode  *string `json:"employee_code,omitempty"`
	Department    *string `json:"department,omitempty"`
}

// timePtrToString safely converts a *time.Time to a formatted string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse maps an Attendance entity to its JSON shape.
func ToResponse(att Attendance) RecordResponse {
	resp := RecordResponse{
		ID:            att.ID,
		UserID:        att.UserID,
		Date:          att.Date,
		CheckInTime:   timePtrToString(att.CheckInTime),
		CheckOutTime:  timePtrToString(att.CheckOutTime),
		Status:        string(att.Status),
		TotalHours:    att.TotalHours,
		EmployeeName:  att.EmployeeName,
		EmployeeEmail: att.EmployeeEmail,
		EmployeeCode:  att.EmployeeCode,
		Department:    att.Department,
	}
	if !att.CreatedAt.IsZero() {
		resp.CreatedAt = att.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !att.UpdatedAt.IsZero() {
		resp.UpdatedAt = att.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

// ToResponses maps a slice of records.
func ToResponses(records []Attendance) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, ToResponse(att))
	}
	return responses
}

// HistoryFilter scopes an employee's own history/summary to a month.
type HistoryFilter struct {
	Month *string // "YYYY-MM"
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && *f.Month != "" && !validator.IsValidMonth(*f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows the manager all-records view.
type ListFilter struct {
	Date         *string
	Status       *string
	EmployeeCode *string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && *f.Status != "" && !ValidStatus(*f.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, half-day, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReportFilter scopes date-range reports and CSV exports. The range is
// inclusive on both ends; an unknown employee code yields an empty report.
type ReportFilter struct {
	StartDate    *string
	EndDate      *string
	EmployeeCode *string
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TeamSummaryResponse is the manager /summary payload: overall tallies plus
// a full status breakdown per department.
type TeamSummaryResponse struct {
	TotalRecords   int                        `json:"totalRecords"`
	Present        int                        `json:"present"`
	Late           int                        `json:"late"`
	HalfDay        int                        `json:"halfDay"`
	Absent         int                        `json:"absent"`
	DepartmentWise map[string]StatusBreakdown `json:"departmentWise"`
}

// TodaySnapshotResponse is the manager today-status payload.
type TodaySnapshotResponse struct {
	TotalRecords int              `json:"totalRecords"`
	Present      []RecordResponse `json:"present"`
	Absent       []RecordResponse `json:"absent"`
}
