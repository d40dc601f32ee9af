package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out state machine
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")

	// Store-level
	ErrDuplicateRecord = errors.New("attendance record already exists for this date")
	ErrRecordNotFound  = errors.New("attendance record not found")
)
