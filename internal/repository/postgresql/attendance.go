package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository. The attendances table
// carries a UNIQUE (user_id, date) constraint; a violation surfaces as
// attendance.ErrDuplicateRecord.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (user_id, date, check_in_time, check_out_time, status, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.UserID,
		record.Date,
		record.CheckInTime,
		record.CheckOutTime,
		record.Status,
		record.TotalHours,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository. A missing
// record is not an error, callers branch on the nil result.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, check_in_time, check_out_time, status, total_hours, created_at, updated_at
		FROM attendances
		WHERE user_id = $1 AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&att.ID,
		&att.UserID,
		&att.Date,
		&att.CheckInTime,
		&att.CheckOutTime,
		&att.Status,
		&att.TotalHours,
		&att.CreatedAt,
		&att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in_time = $1, check_out_time = $2, status = $3, total_hours = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		record.CheckInTime,
		record.CheckOutTime,
		record.Status,
		record.TotalHours,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository. Every row is joined with
// its user so team views and reports carry employee details.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var sb strings.Builder
	sb.WriteString(`
		SELECT a.id, a.user_id, a.date, a.check_in_time, a.check_out_time, a.status, a.total_hours,
			   a.created_at, a.updated_at,
			   u.name, u.email, u.employee_code, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE 1=1
	`)

	args := make([]interface{}, 0, 8)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.UserID != nil {
		sb.WriteString(" AND a.user_id = " + arg(*filter.UserID))
	}
	if filter.Date != nil {
		sb.WriteString(" AND a.date = " + arg(*filter.Date))
	}
	if filter.StartDate != nil {
		sb.WriteString(" AND a.date >= " + arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		sb.WriteString(" AND a.date <= " + arg(*filter.EndDate))
	}
	if filter.MonthPrefix != nil {
		sb.WriteString(" AND a.date LIKE " + arg(*filter.MonthPrefix+"%"))
	}
	if filter.Status != nil {
		sb.WriteString(" AND a.status = " + arg(*filter.Status))
	}
	if filter.CreatedFrom != nil {
		sb.WriteString(" AND a.created_at >= " + arg(*filter.CreatedFrom))
	}
	if filter.CreatedTo != nil {
		sb.WriteString(" AND a.created_at <= " + arg(*filter.CreatedTo))
	}

	if filter.SortDateDesc {
		sb.WriteString(" ORDER BY a.date DESC, u.name ASC")
	} else {
		sb.WriteString(" ORDER BY a.date ASC, u.name ASC")
	}

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(filter.Limit))
	}

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID,
			&att.UserID,
			&att.Date,
			&att.CheckInTime,
			&att.CheckOutTime,
			&att.Status,
			&att.TotalHours,
			&att.CreatedAt,
			&att.UpdatedAt,
			&att.EmployeeName,
			&att.EmployeeEmail,
			&att.EmployeeCode,
			&att.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// BulkCreateAbsences implements attendance.AttendanceRepository. Existing
// records win, conflicting rows are skipped rather than overwritten.
func (r *attendanceRepositoryImpl) BulkCreateAbsences(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (user_id, date, status, total_hours)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	for _, record := range records {
		if _, err := q.Exec(ctx, query, record.UserID, record.Date, record.Status, record.TotalHours); err != nil {
			return fmt.Errorf("failed to insert absence for user %s: %w", record.UserID, err)
		}
	}

	return nil
}
