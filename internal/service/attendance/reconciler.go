package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// ReconcileOpenSessions implements attendance.AttendanceService.
//
// Every open session is closed at chooseCutoff(now, policy): the policy
// cutoff when now has passed it, otherwise now itself, so a run triggered
// before the configured time never stamps a clock-out in the future. The
// read of open sessions and the batch close share one transaction, so two
// overlapping runs cannot double-close and a failure mid-batch leaves no
// session closed.
func (a *AttendanceServiceImpl) ReconcileOpenSessions(ctx context.Context, now time.Time, policy attendance.ReconcilePolicy) (attendance.ReconcileResult, error) {
	if !policy.Enabled {
		slog.Info("auto clock-out disabled by policy, skipping reconciliation")
		return attendance.ReconcileResult{}, nil
	}

	hour, minute, err := config.ParseClockTime(policy.DefaultTime)
	if err != nil {
		return attendance.ReconcileResult{}, fmt.Errorf("invalid auto clock-out time: %w", err)
	}

	chosen, usedDefault := chooseCutoff(now, hour, minute)

	var result attendance.ReconcileResult
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		open, err := a.TimeRecordRepository.ListOpen(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list open sessions: %w", err)
		}
		if len(open) == 0 {
			return nil
		}

		updates := make([]attendance.CloseUpdate, 0, len(open))
		closed := make([]attendance.TimeRecord, 0, len(open))
		for _, record := range open {
			out := closeTimeFor(record, chosen)
			updates = append(updates, attendance.CloseUpdate{
				ID:           record.ID,
				ClockOutTime: out,
				AutoClockOut: true,
			})
			record.ClockOutTime = &out
			record.AutoClockOut = true
			closed = append(closed, record)
		}

		if err := a.TimeRecordRepository.CloseBatch(txCtx, updates); err != nil {
			return err
		}

		result = attendance.ReconcileResult{
			ClosedCount:     len(closed),
			Records:         closed,
			UsedDefaultTime: usedDefault,
		}
		return nil
	})
	if err != nil {
		return attendance.ReconcileResult{}, err
	}
	result.UsedDefaultTime = usedDefault
	return result, nil
}

// chooseCutoff picks the clock-out instant for a reconciler run: today's
// policy time when now has passed it, otherwise now. The bool reports
// whether the policy time won.
func chooseCutoff(now time.Time, hour, minute int) (time.Time, bool) {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.After(cutoff) {
		return cutoff, true
	}
	return now, false
}

// closeTimeFor guards against sessions opened after the cutoff (overnight
// shifts): those close one minute after clock-in, never before it.
func closeTimeFor(record attendance.TimeRecord, cutoff time.Time) time.Time {
	if record.ClockInTime.After(cutoff) {
		return record.ClockInTime.Add(time.Minute)
	}
	return cutoff
}
