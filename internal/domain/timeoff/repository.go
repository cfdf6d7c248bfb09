package timeoff

import "context"

// AllocationRepository - interface for the time_off_allocations table
type AllocationRepository interface {
	Create(ctx context.Context, alloc Allocation) (Allocation, error)
	GetByID(ctx context.Context, id string) (Allocation, error)

	// GetByEmployeeYear returns nil when no row exists for the key
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*Allocation, error)

	// GetByEmployeeYearForUpdate is GetByEmployeeYear with a row lock, for
	// use inside a transaction that will mutate the balances. Serializes
	// concurrent debits/credits on the same employee/year key.
	GetByEmployeeYearForUpdate(ctx context.Context, employeeID string, year int) (*Allocation, error)

	ListByYear(ctx context.Context, year int) ([]Allocation, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]Allocation, error)

	// AdjustRemaining applies signed deltas to the remaining balances
	AdjustRemaining(ctx context.Context, id string, ptoDelta, sickDelta float64) (Allocation, error)

	// SetTotals rewrites the totals and applies the matching deltas to the
	// remaining balances so already-consumed days stay consumed
	SetTotals(ctx context.Context, id string, ptoTotal, sickTotal float64) (Allocation, error)
}

// RequestRepository - interface for the time_off_requests table
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, notes *string) (Request, error)
	Delete(ctx context.Context, id string) error
}

// RequestFilter narrows List results. Zero values match everything.
type RequestFilter struct {
	EmployeeID string
	Status     RequestStatus
}
