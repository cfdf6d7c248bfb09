package attendance

import (
	"testing"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestChooseCutoff(t *testing.T) {
	loc := time.UTC

	t.Run("after configured time uses configured time", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 23, 45, 12, 0, loc)
		chosen, usedDefault := chooseCutoff(now, 17, 30)

		assert.True(t, usedDefault)
		assert.Equal(t, time.Date(2026, 3, 10, 17, 30, 0, 0, loc), chosen)
	})

	t.Run("before configured time uses now", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 9, 15, 0, 0, loc)
		chosen, usedDefault := chooseCutoff(now, 17, 30)

		assert.False(t, usedDefault)
		assert.Equal(t, now, chosen)
	})

	t.Run("exactly at configured time uses now", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 17, 30, 0, 0, loc)
		chosen, usedDefault := chooseCutoff(now, 17, 30)

		assert.False(t, usedDefault)
		assert.Equal(t, now, chosen)
	})

	t.Run("cutoff is never in the future", func(t *testing.T) {
		for hour := 0; hour < 24; hour++ {
			now := time.Date(2026, 3, 10, hour, 0, 1, 0, loc)
			chosen, _ := chooseCutoff(now, 17, 30)
			assert.False(t, chosen.After(now), "cutoff %v after now %v", chosen, now)
		}
	})
}

func TestCloseTimeFor(t *testing.T) {
	loc := time.UTC
	cutoff := time.Date(2026, 3, 10, 17, 30, 0, 0, loc)

	t.Run("normal session closes at cutoff", func(t *testing.T) {
		record := attendance.TimeRecord{
			ClockInTime: time.Date(2026, 3, 10, 9, 0, 0, 0, loc),
		}
		assert.Equal(t, cutoff, closeTimeFor(record, cutoff))
	})

	t.Run("session opened after cutoff closes a minute after clock-in", func(t *testing.T) {
		clockIn := time.Date(2026, 3, 10, 22, 10, 0, 0, loc)
		record := attendance.TimeRecord{ClockInTime: clockIn}

		out := closeTimeFor(record, cutoff)
		assert.Equal(t, clockIn.Add(time.Minute), out)
		assert.True(t, out.After(clockIn))
	})

	t.Run("session opened exactly at cutoff closes at cutoff", func(t *testing.T) {
		record := attendance.TimeRecord{ClockInTime: cutoff}
		assert.Equal(t, cutoff, closeTimeFor(record, cutoff))
	})
}
