package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/clock"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	refreshTokens  auth.RefreshTokenRepository
	clock          clock.Clock
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	refreshTokens auth.RefreshTokenRepository,
	clk clock.Clock,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		refreshTokens:  refreshTokens,
		clock:          clk,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
	scheduler.AddJob("cleanup_refresh_tokens", 6*time.Hour, j.CleanupRefreshTokens)
}

// MarkAbsentUsers backfills an absent record for every user without one for
// yesterday, so monthly summaries and the absent bucket stay truthful without
// scanning for gaps at query time. Only runs in the first hour after
// midnight; the insert skips conflicting rows, so reruns are harmless.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	now := j.clock.Now()
	if now.Hour() != 0 {
		return nil
	}

	yesterday := attendance.DateOf(now.AddDate(0, 0, -1))

	users, err := j.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	existing, err := j.attendanceRepo.List(ctx, attendance.Filter{Date: &yesterday})
	if err != nil {
		return fmt.Errorf("failed to list attendances: %w", err)
	}

	recorded := make(map[string]bool, len(existing))
	for _, record := range existing {
		recorded[record.UserID] = true
	}

	var absences []attendance.Attendance
	for _, u := range users {
		if recorded[u.ID] {
			continue
		}
		absences = append(absences, attendance.Attendance{
			UserID: u.ID,
			Date:   yesterday,
			Status: attendance.StatusAbsent,
		})
	}

	if len(absences) == 0 {
		return nil
	}

	if err := j.attendanceRepo.BulkCreateAbsences(ctx, absences); err != nil {
		return fmt.Errorf("failed to create absence records: %w", err)
	}

	slog.Info("Cron: Marked absent users", "date", yesterday, "count", len(absences))
	return nil
}

// CleanupRefreshTokens drops refresh tokens past their expiry.
func (j *AttendanceJobs) CleanupRefreshTokens(ctx context.Context) error {
	deleted, err := j.refreshTokens.DeleteExpired(ctx, j.clock.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}

	if deleted > 0 {
		slog.Info("Cron: Deleted expired refresh tokens", "count", deleted)
	}
	return nil
}
