package attendance

import "time"

// TimeRecord is one clock-in-to-clock-out interval for an employee.
// ClockOutTime is nil while the session is still open. AutoClockOut is
// true only when the reconciler assigned the clock-out time.
type TimeRecord struct {
	ID           string
	EmployeeID   string
	ClockInTime  time.Time
	ClockOutTime *time.Time
	AutoClockOut bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName *string
}

// Open reports whether the record has no clock-out yet.
func (r TimeRecord) Open() bool {
	return r.ClockOutTime == nil
}
