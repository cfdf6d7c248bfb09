package timeoff

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange        = errors.New("start date must be before end date")
	ErrRequestNotFound         = errors.New("time-off request not found")
	ErrAllocationNotFound      = errors.New("time-off allocation not found")
	ErrRequestAlreadyProcessed = errors.New("cannot modify a request that has already been processed")
	ErrInvalidStatus           = errors.New("invalid request status")
	ErrInvalidRequestType      = errors.New("invalid request type")
)

// QuotaExceededError is returned when a request asks for more days than
// the track has remaining. It carries both amounts for caller display.
type QuotaExceededError struct {
	RequestType RequestType
	Requested   float64
	Available   float64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("not enough %s days remaining: requested %g, available %g",
		e.RequestType, e.Requested, e.Available)
}
