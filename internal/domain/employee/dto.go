package employee

import (
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name    string  `json:"name"`
	PayRate float64 `json:"payRate"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.PayRate < 0 {
		errs = append(errs, validator.ValidationError{Field: "payRate", Message: "pay rate cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID      string   `json:"-"`
	Name    *string  `json:"name"`
	PayRate *float64 `json:"payRate"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if r.PayRate != nil && *r.PayRate < 0 {
		errs = append(errs, validator.ValidationError{Field: "payRate", Message: "pay rate cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	PayRate float64 `json:"payRate"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{ID: e.ID, Name: e.Name, PayRate: e.PayRate}
}
