package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens a new session for the employee
	ClockIn(ctx context.Context, req ClockRequest) (TimeRecordResponse, error)

	// ClockOut closes the employee's open session at the current time
	ClockOut(ctx context.Context, req ClockRequest) (TimeRecordResponse, error)

	// ListRecords retrieves all time records with employee names
	ListRecords(ctx context.Context) ([]TimeRecordResponse, error)

	// UpdateRecord rewrites a record's times (admin fix-up)
	UpdateRecord(ctx context.Context, req UpdateTimeRecordRequest) (TimeRecordResponse, error)

	// DeleteRecord removes a record
	DeleteRecord(ctx context.Context, id string) error

	// ReconcileOpenSessions closes every open session at the earlier of
	// now and the policy cutoff, in one atomic batch. A disabled policy
	// is a no-op, not an error.
	ReconcileOpenSessions(ctx context.Context, now time.Time, policy ReconcilePolicy) (ReconcileResult, error)
}
