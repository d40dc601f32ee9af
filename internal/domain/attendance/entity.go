package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

// IsPresentLike reports whether the status counts as "showed up" in
// aggregates: present, late and half-day all do.
func (s Status) IsPresentLike() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// DateLayout is the calendar-date format stored on records. Dates are kept
// as fixed-width strings, not timestamps, so "today" is stable and range
// filters can compare lexicographically.
const DateLayout = "2006-01-02"

// DateOf formats an instant as the local civil date string.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthPrefixOf returns the "YYYY-MM" prefix of a date string.
func MonthPrefixOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

type Attendance struct {
	ID           string
	UserID       string
	Date         string // "YYYY-MM-DD"
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status
	TotalHours   float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined user fields for team views and reports
	EmployeeName  *string
	EmployeeEmail *string
	EmployeeCode  *string
	Department    *string
}
