package timeoff

import "context"

// TimeOffService defines business logic for requests and allocations.
// Every mutating operation runs as one transaction: the status change and
// any balance adjustment commit or roll back together.
type TimeOffService interface {
	// CreateRequest validates, bootstraps a default allocation when the
	// employee/year has none, checks quota, and inserts as pending.
	// No balance is debited at creation time.
	CreateRequest(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)

	// SetRequestStatus moves a pending request to approved or denied.
	// Re-asserting a terminal status is a no-op; any other transition off
	// a terminal status fails with ErrRequestAlreadyProcessed. Approval
	// debits the allocation; leaving approved credits it back.
	SetRequestStatus(ctx context.Context, req SetStatusRequest) (RequestResponse, error)

	// DeleteRequest removes a request, crediting the allocation first when
	// the request was approved.
	DeleteRequest(ctx context.Context, id string) error

	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, error)

	// UpsertAllocation creates a fresh allocation or adjusts totals on an
	// existing one, moving the remaining balances by the total deltas.
	UpsertAllocation(ctx context.Context, req UpsertAllocationRequest) (AllocationResponse, error)

	ListAllocations(ctx context.Context, employeeID string, year int) ([]AllocationResponse, error)
}
