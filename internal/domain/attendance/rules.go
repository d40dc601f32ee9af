package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// OfficeStart is the configured local time-of-day used as the punctuality
// reference point for check-in classification.
type OfficeStart struct {
	Hour   int
	Minute int
}

// DefaultOfficeStart is used when no office start is configured.
var DefaultOfficeStart = OfficeStart{Hour: 9, Minute: 30}

// ParseOfficeStart parses an "HH:MM" string.
func ParseOfficeStart(s string) (OfficeStart, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return OfficeStart{}, fmt.Errorf("invalid office start %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return OfficeStart{}, fmt.Errorf("invalid office start hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return OfficeStart{}, fmt.Errorf("invalid office start minute in %q", s)
	}
	return OfficeStart{Hour: h, Minute: m}, nil
}

// ClassifyCheckIn derives the punctuality status of a check-in instant
// against the office start on the same calendar day:
//
//	up to 5 minutes after office start (or any time before) -> present
//	between 5 and 60 minutes after                          -> late
//	more than 60 minutes after                              -> half-day
func ClassifyCheckIn(checkIn time.Time, start OfficeStart) Status {
	startInstant := time.Date(
		checkIn.Year(), checkIn.Month(), checkIn.Day(),
		start.Hour, start.Minute, 0, 0,
		checkIn.Location(),
	)

	diffMinutes := checkIn.Sub(startInstant).Minutes()

	switch {
	case diffMinutes <= 5:
		return StatusPresent
	case diffMinutes <= 60:
		return StatusLate
	default:
		return StatusHalfDay
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WorkedHours computes the worked duration between check-in and check-out in
// hours, rounded to two decimals. A check-out before the check-in yields 0
// rather than a negative duration.
func WorkedHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	if hours < 0 {
		return 0
	}
	return round2(hours)
}

// Summary tallies a set of records per status bucket. Records carrying a
// status outside the four known buckets still count toward TotalDays and
// TotalHours but no bucket.
type Summary struct {
	Present    int     `json:"present"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	Absent     int     `json:"absent"`
	TotalHours float64 `json:"totalHours"`
	TotalDays  int     `json:"totalDays"`
}

// Summarize aggregates records into a Summary. TotalHours is summed across
// records and rounded once at the end.
func Summarize(records []Attendance) Summary {
	var s Summary
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			s.Present++
		case StatusLate:
			s.Late++
		case StatusHalfDay:
			s.HalfDay++
		case StatusAbsent:
			s.Absent++
		}
		s.TotalHours += r.TotalHours
	}
	s.TotalHours = round2(s.TotalHours)
	s.TotalDays = len(records)
	return s
}

// DaySnapshot partitions one day's records into present-like vs absent.
type DaySnapshot struct {
	TotalRecords int
	Present      []Attendance
	Absent       []Attendance
}

// PartitionDay splits records into present-like and absent groups. Records
// with an unknown status land in neither group but count toward the total.
func PartitionDay(records []Attendance) DaySnapshot {
	snap := DaySnapshot{
		TotalRecords: len(records),
		Present:      make([]Attendance, 0, len(records)),
		Absent:       make([]Attendance, 0),
	}
	for _, r := range records {
		if r.Status.IsPresentLike() {
			snap.Present = append(snap.Present, r)
		} else if r.Status == StatusAbsent {
			snap.Absent = append(snap.Absent, r)
		}
	}
	return snap
}

// WeeklyTrend buckets records by attendance date, counting present-like
// records once each. Every record contributes a key so days with only absent
// records still show up as zero. The caller supplies the record set, already
// windowed by creation time, so a record corrected outside its original day
// falls out of the trend even though its date is in range.
func WeeklyTrend(records []Attendance) map[string]int {
	trend := make(map[string]int)
	for _, r := range records {
		if _, ok := trend[r.Date]; !ok {
			trend[r.Date] = 0
		}
		if r.Status.IsPresentLike() {
			trend[r.Date]++
		}
	}
	return trend
}

// UnknownDepartment labels records whose user carries no department.
const UnknownDepartment = "Unknown"

// DeptCounts is the present-like vs absent split for one department.
type DeptCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

// DepartmentRollup groups records by their user's department, counting
// present-like and absent per department.
func DepartmentRollup(records []Attendance) map[string]DeptCounts {
	stats := make(map[string]DeptCounts)
	for _, r := range records {
		dep := UnknownDepartment
		if r.Department != nil && *r.Department != "" {
			dep = *r.Department
		}
		counts := stats[dep]
		if r.Status.IsPresentLike() {
			counts.Present++
		} else if r.Status == StatusAbsent {
			counts.Absent++
		}
		stats[dep] = counts
	}
	return stats
}

// StatusBreakdown is a full four-bucket tally, used per department in the
// team summary.
type StatusBreakdown struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	HalfDay int `json:"halfDay"`
	Absent  int `json:"absent"`
}

func (b *StatusBreakdown) add(s Status) {
	switch s {
	case StatusPresent:
		b.Present++
	case StatusLate:
		b.Late++
	case StatusHalfDay:
		b.HalfDay++
	case StatusAbsent:
		b.Absent++
	}
}

// DepartmentBreakdown tallies all four statuses per department.
func DepartmentBreakdown(records []Attendance) map[string]StatusBreakdown {
	stats := make(map[string]StatusBreakdown)
	for _, r := range records {
		dep := UnknownDepartment
		if r.Department != nil && *r.Department != "" {
			dep = *r.Department
		}
		breakdown := stats[dep]
		breakdown.add(r.Status)
		stats[dep] = breakdown
	}
	return stats
}
