package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Quota errors carry the requested and available amounts
	var quotaErr *timeoff.QuotaExceededError
	if errors.As(err, &quotaErr) {
		BadRequest(w, quotaErr.Error(), map[string]string{
			"request_type": string(quotaErr.RequestType),
			"requested":    fmt.Sprintf("%g", quotaErr.Requested),
			"available":    fmt.Sprintf("%g", quotaErr.Available),
		})
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		BadRequest(w, "Employee is already clocked in", nil)
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "Employee is not clocked in", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Time record not found")

	// Time off domain errors
	case errors.Is(err, timeoff.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, timeoff.ErrRequestNotFound):
		NotFound(w, "Time off request not found")
	case errors.Is(err, timeoff.ErrAllocationNotFound):
		NotFound(w, "Time off allocation not found")
	case errors.Is(err, timeoff.ErrRequestAlreadyProcessed):
		Conflict(w, "Time off request already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
