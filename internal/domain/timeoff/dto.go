package timeoff

import (
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	EmployeeID   string   `json:"employeeId"`
	RequestType  string   `json:"requestType"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	DurationDays *float64 `json:"durationDays"`
	Notes        string   `json:"notes"`
}

func (r CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "employee ID is required"})
	}
	if !validator.IsInSlice(r.RequestType, []string{
		string(RequestTypePTO), string(RequestTypeSick), string(RequestTypeUnpaid), string(RequestTypeOther),
	}) {
		errs = append(errs, validator.ValidationError{Field: "requestType", Message: "must be PTO, Sick, Unpaid or Other"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "startDate", Message: "must be a YYYY-MM-DD date"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "endDate", Message: "must be a YYYY-MM-DD date"})
	}
	if r.DurationDays != nil && *r.DurationDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "durationDays", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetStatusRequest struct {
	ID     string  `json:"-"`
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func (r SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.Status, []string{
		string(RequestStatusPending), string(RequestStatusApproved), string(RequestStatusDenied),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be pending, approved or denied"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertAllocationRequest struct {
	EmployeeID string   `json:"employeeId"`
	Year       int      `json:"year"`
	PTOTotal   *float64 `json:"ptoTotal"`
	SickTotal  *float64 `json:"sickTotal"`
}

func (r UpsertAllocationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employeeId", Message: "employee ID is required"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.PTOTotal != nil && *r.PTOTotal < 0 {
		errs = append(errs, validator.ValidationError{Field: "ptoTotal", Message: "cannot be negative"})
	}
	if r.SickTotal != nil && *r.SickTotal < 0 {
		errs = append(errs, validator.ValidationError{Field: "sickTotal", Message: "cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName *string `json:"employeeName,omitempty"`
	RequestType  string  `json:"requestType"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	DurationDays float64 `json:"durationDays"`
	Notes        string  `json:"notes"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    *string `json:"updatedAt,omitempty"`
}

func ToRequestResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		RequestType:  string(r.RequestType),
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		DurationDays: r.DurationDays,
		Notes:        r.Notes,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.UpdatedAt != nil {
		updated := r.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}
	return resp
}

type AllocationResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	EmployeeName  *string `json:"employeeName,omitempty"`
	Year          int     `json:"year"`
	PTOTotal      float64 `json:"ptoTotal"`
	PTORemaining  float64 `json:"ptoRemaining"`
	SickTotal     float64 `json:"sickTotal"`
	SickRemaining float64 `json:"sickRemaining"`
}

func ToAllocationResponse(a Allocation) AllocationResponse {
	return AllocationResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Year:          a.Year,
		PTOTotal:      a.PTOTotal,
		PTORemaining:  a.PTORemaining,
		SickTotal:     a.SickTotal,
		SickRemaining: a.SickRemaining,
	}
}
