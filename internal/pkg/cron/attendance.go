package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
)

// AttendanceJobs owns the nightly auto clock-out trigger. The reconciler
// itself takes now and the policy as arguments, so the job carries no
// state beyond its dependencies.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	policy        config.AutoClockOutConfig
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, policy config.AutoClockOutConfig) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		policy:        policy,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_clock_out", 1*time.Hour, j.AutoClockOut)
}

// AutoClockOut closes every session still open at midnight. The hourly
// tick fires all day; only the midnight run does work.
func (j *AttendanceJobs) AutoClockOut(ctx context.Context) error {
	now := time.Now()
	if now.Hour() != 0 {
		return nil
	}

	result, err := j.attendanceSvc.ReconcileOpenSessions(ctx, now, attendance.ReconcilePolicy{
		Enabled:     j.policy.Enabled,
		DefaultTime: j.policy.DefaultTime,
	})
	if err != nil {
		return fmt.Errorf("auto clock-out failed: %w", err)
	}

	if j.policy.LogEvents && result.ClosedCount > 0 {
		employeeIDs := make([]string, 0, len(result.Records))
		for _, r := range result.Records {
			employeeIDs = append(employeeIDs, r.EmployeeID)
		}
		slog.Info("auto clock-out completed",
			"closed_count", result.ClosedCount,
			"used_default_time", result.UsedDefaultTime,
			"default_time", j.policy.DefaultTime,
			"employee_ids", employeeIDs,
		)
	}
	return nil
}
