package attendance

import (
	"context"
	"time"
)

// Filter narrows List queries. Date bounds are inclusive and compared as
// fixed-width date strings; MonthPrefix matches "YYYY-MM". CreatedFrom and
// CreatedTo bound the record's creation timestamp, not its attendance date.
type Filter struct {
	UserID      *string
	Date        *string
	StartDate   *string
	EndDate     *string
	MonthPrefix *string
	Status      *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// SortDateDesc orders results by attendance date descending (newest
	// first); the default order is ascending.
	SortDateDesc bool
	// Limit caps the number of rows returned; zero means no cap.
	Limit int
}

// AttendanceRepository defines data access for attendance records. The store
// enforces at most one record per (user, date); Create surfaces a violation
// as ErrDuplicateRecord. No method deletes records.
type AttendanceRepository interface {
	// Create inserts a new record and returns it with store-assigned fields.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetByUserAndDate returns (nil, nil) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date string) (*Attendance, error)

	// Update persists the in-place mutation of check-in/out, status and
	// total hours.
	Update(ctx context.Context, record Attendance) error

	// List retrieves records matching the filter, joined with their user's
	// name, email, employee code and department.
	List(ctx context.Context, filter Filter) ([]Attendance, error)

	// BulkCreateAbsences inserts absence records, skipping any that would
	// violate the per-day uniqueness constraint.
	BulkCreateAbsences(ctx context.Context, records []Attendance) error
}
