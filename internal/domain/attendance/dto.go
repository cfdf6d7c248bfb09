package attendance

import (
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type ClockRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (r ClockRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "employee ID is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTimeRecordRequest struct {
	ID           string  `json:"-"`
	ClockInTime  string  `json:"clockInTime"`
	ClockOutTime *string `json:"clockOutTime"`
}

func (r UpdateTimeRecordRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDateTime(r.ClockInTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "clockInTime", Message: "must be an ISO8601 timestamp"})
	}
	if r.ClockOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "clockOutTime", Message: "must be an ISO8601 timestamp"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReconcilePolicy gates and parameterizes the open-session reconciler.
// DefaultTime is the configured cutoff in 24-hour "HH:MM" format.
type ReconcilePolicy struct {
	Enabled     bool
	DefaultTime string
}

// ReconcileResult reports what a reconciler run closed.
type ReconcileResult struct {
	ClosedCount int
	Records     []TimeRecord
	// UsedDefaultTime is true when the policy cutoff was chosen over "now"
	UsedDefaultTime bool
}

type TimeRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName *string `json:"employeeName,omitempty"`
	ClockInTime  string  `json:"clockInTime"`
	ClockOutTime *string `json:"clockOutTime"`
	AutoClockOut bool    `json:"autoClockOut"`
}

func ToResponse(r TimeRecord) TimeRecordResponse {
	resp := TimeRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		ClockInTime:  r.ClockInTime.Format(time.RFC3339),
		AutoClockOut: r.AutoClockOut,
	}
	if r.ClockOutTime != nil {
		out := r.ClockOutTime.Format(time.RFC3339)
		resp.ClockOutTime = &out
	}
	return resp
}
