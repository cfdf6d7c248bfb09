package payroll

import "time"

// StatsFilter bounds the stats window by clock-in date. Nil bounds are
// open ended.
type StatsFilter struct {
	From *time.Time
	To   *time.Time
}

// Includes reports whether a record clocked in at t falls in the window.
// The To bound is inclusive of its whole day.
func (f StatsFilter) Includes(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// StatRecord is one closed time record priced at the employee's pay rate.
// Hours are rounded to two decimal places, pay to cents.
type StatRecord struct {
	RecordID     string  `json:"recordId"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	ClockInTime  string  `json:"clockInTime"`
	ClockOutTime string  `json:"clockOutTime"`
	HoursWorked  float64 `json:"hoursWorked"`
	Pay          float64 `json:"pay"`
}

// EmployeeTotal aggregates an employee's stat records.
type EmployeeTotal struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	TotalHours   float64 `json:"totalHours"`
	TotalPay     float64 `json:"totalPay"`
}

type StatsResponse struct {
	Records []StatRecord    `json:"records"`
	Totals  []EmployeeTotal `json:"totals"`
}
