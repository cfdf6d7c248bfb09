package payroll

import "context"

// PayrollService computes pay stats from closed time records. Read-only.
type PayrollService interface {
	Stats(ctx context.Context, filter StatsFilter) (StatsResponse, error)
}
