package timeoff

import "time"

type RequestType string

const (
	RequestTypePTO    RequestType = "PTO"
	RequestTypeSick   RequestType = "Sick"
	RequestTypeUnpaid RequestType = "Unpaid"
	RequestTypeOther  RequestType = "Other"
)

// CountsAgainstAllocation reports whether the request type debits the
// PTO/sick allocation. Unpaid and Other bypass the ledger entirely.
func (t RequestType) CountsAgainstAllocation() bool {
	return t == RequestTypePTO || t == RequestTypeSick
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDenied   RequestStatus = "denied"
)

// Terminal reports whether the status permits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusDenied
}

// Allocation is the per-employee-per-year bank of PTO and sick days.
// Remaining balances are decremented on approval and credited back on
// reversal; they are not clamped at zero.
type Allocation struct {
	ID            string
	EmployeeID    string
	Year          int
	PTOTotal      float64
	PTORemaining  float64
	SickTotal     float64
	SickRemaining float64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// Remaining returns the balance for the request type's track.
func (a Allocation) Remaining(t RequestType) float64 {
	if t == RequestTypeSick {
		return a.SickRemaining
	}
	return a.PTORemaining
}

type Request struct {
	ID           string
	EmployeeID   string
	RequestType  RequestType
	StartDate    time.Time
	EndDate      time.Time
	DurationDays float64
	Notes        string
	Status       RequestStatus
	CreatedAt    time.Time
	UpdatedAt    *time.Time

	// DTO
	EmployeeName *string
}
