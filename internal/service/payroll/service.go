package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	timeRecordRepo attendance.TimeRecordRepository
	employeeRepo   employee.EmployeeRepository
}

func NewPayrollService(
	timeRecordRepo attendance.TimeRecordRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		timeRecordRepo: timeRecordRepo,
		employeeRepo:   employeeRepo,
	}
}

// Stats implements payroll.PayrollService. Open sessions are excluded:
// there is nothing to price until the clock-out exists.
func (p *PayrollServiceImpl) Stats(ctx context.Context, filter payroll.StatsFilter) (payroll.StatsResponse, error) {
	employees, err := p.employeeRepo.List(ctx)
	if err != nil {
		return payroll.StatsResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	rates := make(map[string]decimal.Decimal, len(employees))
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		rates[e.ID] = decimal.NewFromFloat(e.PayRate)
		names[e.ID] = e.Name
	}

	records, err := p.timeRecordRepo.List(ctx)
	if err != nil {
		return payroll.StatsResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	stats := make([]payroll.StatRecord, 0, len(records))
	totalHours := make(map[string]decimal.Decimal)
	totalPay := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, r := range records {
		if r.ClockOutTime == nil {
			continue
		}
		if !filter.Includes(r.ClockInTime) {
			continue
		}

		hours := recordHours(r.ClockInTime, *r.ClockOutTime)
		pay := hours.Mul(rates[r.EmployeeID]).Round(2)

		stats = append(stats, payroll.StatRecord{
			RecordID:     r.ID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: names[r.EmployeeID],
			ClockInTime:  r.ClockInTime.Format(time.RFC3339),
			ClockOutTime: r.ClockOutTime.Format(time.RFC3339),
			HoursWorked:  hours.InexactFloat64(),
			Pay:          pay.InexactFloat64(),
		})

		if _, seen := totalHours[r.EmployeeID]; !seen {
			order = append(order, r.EmployeeID)
		}
		totalHours[r.EmployeeID] = totalHours[r.EmployeeID].Add(hours)
		totalPay[r.EmployeeID] = totalPay[r.EmployeeID].Add(pay)
	}

	totals := make([]payroll.EmployeeTotal, 0, len(order))
	for _, id := range order {
		totals = append(totals, payroll.EmployeeTotal{
			EmployeeID:   id,
			EmployeeName: names[id],
			TotalHours:   totalHours[id].InexactFloat64(),
			TotalPay:     totalPay[id].Round(2).InexactFloat64(),
		})
	}

	return payroll.StatsResponse{Records: stats, Totals: totals}, nil
}

// recordHours returns the worked duration in hours, rounded to 0.01h.
// Negative spans (bad admin edits) clamp to zero.
func recordHours(in, out time.Time) decimal.Decimal {
	seconds := out.Sub(in).Seconds()
	if seconds < 0 {
		seconds = 0
	}
	return decimal.NewFromFloat(seconds).Div(decimal.NewFromInt(3600)).Round(2)
}
