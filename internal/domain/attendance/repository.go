package attendance

import (
	"context"
	"time"
)

// TimeRecordRepository defines data access for the time_records table.
type TimeRecordRepository interface {
	// Create inserts a new record. ClockOutTime must be nil.
	Create(ctx context.Context, record TimeRecord) (TimeRecord, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (TimeRecord, error)

	// GetOpenByEmployee returns the employee's open record, if any.
	// Used to enforce at most one open session per employee.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*TimeRecord, error)

	// ListOpen returns every record with no clock-out, oldest first
	ListOpen(ctx context.Context) ([]TimeRecord, error)

	// List returns all records joined with employee names
	List(ctx context.Context) ([]TimeRecord, error)

	// SetClockOut closes a single record
	SetClockOut(ctx context.Context, id string, clockOut time.Time, auto bool) (TimeRecord, error)

	// CloseBatch closes many records in one statement set. Callers wrap it
	// in a transaction so the batch commits or rolls back as a whole.
	CloseBatch(ctx context.Context, updates []CloseUpdate) error

	// Update rewrites clock-in/out times on an existing record
	Update(ctx context.Context, req UpdateTimeRecordRequest) (TimeRecord, error)

	// Delete removes a record
	Delete(ctx context.Context, id string) error
}

// CloseUpdate is one row of a reconciler batch close.
type CloseUpdate struct {
	ID           string
	ClockOutTime time.Time
	AutoClockOut bool
}
