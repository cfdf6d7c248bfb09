package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn = errors.New("already clocked in")
	ErrNotClockedIn     = errors.New("not currently clocked in")
	ErrRecordNotFound   = errors.New("time record not found")
)
