package attendance

import (
	"testing"
	"time"
)

func ts(hour, minute int) time.Time {
	return time.Date(2025, 6, 9, hour, minute, 0, 0, time.UTC)
}

func TestParseOfficeStart(t *testing.T) {
	tests := []struct {
		input   string
		want    OfficeStart
		wantErr bool
	}{
		{"09:30", OfficeStart{9, 30}, false},
		{"00:00", OfficeStart{0, 0}, false},
		{"23:59", OfficeStart{23, 59}, false},
		{"24:00", OfficeStart{}, true},
		{"09:60", OfficeStart{}, true},
		{"0930", OfficeStart{}, true},
		{"", OfficeStart{}, true},
	}

	for _, tt := range tests {
		got, err := ParseOfficeStart(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOfficeStart(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseOfficeStart(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestClassifyCheckIn(t *testing.T) {
	start := DefaultOfficeStart // 09:30

	tests := []struct {
		name    string
		checkIn time.Time
		want    Status
	}{
		{"well before start", ts(8, 0), StatusPresent},
		{"exactly at start", ts(9, 30), StatusPresent},
		{"within grace", ts(9, 34), StatusPresent},
		{"grace boundary", ts(9, 35), StatusPresent},
		{"just past grace", ts(9, 36), StatusLate},
		{"late mid-window", ts(10, 0), StatusLate},
		{"late boundary", ts(10, 30), StatusLate},
		{"past late window", ts(10, 31), StatusHalfDay},
		{"very late", ts(13, 0), StatusHalfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCheckIn(tt.checkIn, start); got != tt.want {
				t.Errorf("ClassifyCheckIn(%v) = %s, want %s", tt.checkIn.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestClassifyCheckInCustomStart(t *testing.T) {
	start := OfficeStart{Hour: 8, Minute: 0}

	if got := ClassifyCheckIn(ts(8, 5), start); got != StatusPresent {
		t.Errorf("08:05 against 08:00 = %s, want %s", got, StatusPresent)
	}
	if got := ClassifyCheckIn(ts(8, 45), start); got != StatusLate {
		t.Errorf("08:45 against 08:00 = %s, want %s", got, StatusLate)
	}
	if got := ClassifyCheckIn(ts(9, 30), start); got != StatusHalfDay {
		t.Errorf("09:30 against 08:00 = %s, want %s", got, StatusHalfDay)
	}
}

func TestWorkedHours(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     float64
	}{
		{"full day", ts(9, 30), ts(17, 45), 8.25},
		{"short day", ts(9, 0), ts(13, 30), 4.5},
		{"rounded", ts(9, 0), ts(9, 10), 0.17},
		{"same instant", ts(9, 0), ts(9, 0), 0},
		{"checkout before checkin", ts(17, 0), ts(9, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkedHours(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("WorkedHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []Attendance{
		{Status: StatusPresent, TotalHours: 8},
		{Status: StatusPresent, TotalHours: 8.5},
		{Status: StatusLate, TotalHours: 7.25},
		{Status: StatusPresent, TotalHours: 8},
		{Status: StatusAbsent, TotalHours: 0},
	}

	got := Summarize(records)

	want := Summary{Present: 3, Late: 1, HalfDay: 0, Absent: 1, TotalHours: 31.75, TotalDays: 5}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero summary", got)
	}
}

func TestPartitionDay(t *testing.T) {
	records := []Attendance{
		{ID: "1", Status: StatusPresent},
		{ID: "2", Status: StatusLate},
		{ID: "3", Status: StatusAbsent},
		{ID: "4", Status: StatusHalfDay},
	}

	snap := PartitionDay(records)

	if snap.TotalRecords != 4 {
		t.Errorf("TotalRecords = %d, want 4", snap.TotalRecords)
	}
	if len(snap.Present) != 3 {
		t.Errorf("len(Present) = %d, want 3", len(snap.Present))
	}
	if len(snap.Absent) != 1 || snap.Absent[0].ID != "3" {
		t.Errorf("Absent = %+v, want the single absent record", snap.Absent)
	}
}

func TestWeeklyTrend(t *testing.T) {
	records := []Attendance{
		{Date: "2025-06-09", Status: StatusPresent},
		{Date: "2025-06-09", Status: StatusLate},
		{Date: "2025-06-10", Status: StatusAbsent},
		{Date: "2025-06-11", Status: StatusHalfDay},
	}

	trend := WeeklyTrend(records)

	if len(trend) != 3 {
		t.Fatalf("len(trend) = %d, want 3", len(trend))
	}
	if trend["2025-06-09"] != 2 {
		t.Errorf("trend[2025-06-09] = %d, want 2", trend["2025-06-09"])
	}
	if count, ok := trend["2025-06-10"]; !ok || count != 0 {
		t.Errorf("trend[2025-06-10] = %d (present %v), want a zero entry", count, ok)
	}
	if trend["2025-06-11"] != 1 {
		t.Errorf("trend[2025-06-11] = %d, want 1", trend["2025-06-11"])
	}
}

func strPtr(s string) *string { return &s }

func TestDepartmentRollup(t *testing.T) {
	records := []Attendance{
		{Status: StatusPresent, Department: strPtr("Engineering")},
		{Status: StatusLate, Department: strPtr("Engineering")},
		{Status: StatusAbsent, Department: strPtr("Engineering")},
		{Status: StatusPresent, Department: strPtr("Sales")},
		{Status: StatusHalfDay, Department: nil},
		{Status: StatusAbsent, Department: strPtr("")},
	}

	stats := DepartmentRollup(records)

	if got := stats["Engineering"]; got != (DeptCounts{Present: 2, Absent: 1}) {
		t.Errorf("Engineering = %+v, want {Present:2 Absent:1}", got)
	}
	if got := stats["Sales"]; got != (DeptCounts{Present: 1}) {
		t.Errorf("Sales = %+v, want {Present:1}", got)
	}
	if got := stats[UnknownDepartment]; got != (DeptCounts{Present: 1, Absent: 1}) {
		t.Errorf("Unknown = %+v, want {Present:1 Absent:1}", got)
	}

	// Every record lands in exactly one department bucket.
	total := 0
	for _, c := range stats {
		total += c.Present + c.Absent
	}
	if total != len(records) {
		t.Errorf("rollup total = %d, want %d", total, len(records))
	}
}

func TestDepartmentBreakdown(t *testing.T) {
	records := []Attendance{
		{Status: StatusPresent, Department: strPtr("Engineering")},
		{Status: StatusLate, Department: strPtr("Engineering")},
		{Status: StatusHalfDay, Department: strPtr("Engineering")},
		{Status: StatusAbsent, Department: nil},
	}

	stats := DepartmentBreakdown(records)

	if got := stats["Engineering"]; got != (StatusBreakdown{Present: 1, Late: 1, HalfDay: 1}) {
		t.Errorf("Engineering = %+v", got)
	}
	if got := stats[UnknownDepartment]; got != (StatusBreakdown{Absent: 1}) {
		t.Errorf("Unknown = %+v", got)
	}
}

func TestDateHelpers(t *testing.T) {
	instant := time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC)
	if got := DateOf(instant); got != "2025-06-09" {
		t.Errorf("DateOf() = %q, want 2025-06-09", got)
	}
	if got := MonthPrefixOf("2025-06-09"); got != "2025-06" {
		t.Errorf("MonthPrefixOf() = %q, want 2025-06", got)
	}
	if got := MonthPrefixOf("bad"); got != "bad" {
		t.Errorf("MonthPrefixOf(short) = %q, want passthrough", got)
	}
}
