package payroll

import (
	"testing"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func TestRecordHours(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		out      time.Time
		expected string
	}{
		{"full shift", base.Add(8 * time.Hour), "8"},
		{"half hour", base.Add(30 * time.Minute), "0.5"},
		{"rounds to hundredths", base.Add(100 * time.Minute), "1.67"},
		{"one minute", base.Add(time.Minute), "0.02"},
		{"negative span clamps to zero", base.Add(-time.Hour), "0"},
		{"zero span", base, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, recordHours(base, tt.out).String())
		})
	}
}

func TestStatsFilterIncludes(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("open window includes everything", func(t *testing.T) {
		f := payroll.StatsFilter{}
		assert.True(t, f.Includes(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		f := payroll.StatsFilter{From: &from, To: &to}
		assert.True(t, f.Includes(from))
		// Anything within the To day still counts
		assert.True(t, f.Includes(to.Add(23*time.Hour)))
		assert.False(t, f.Includes(from.Add(-time.Second)))
		assert.False(t, f.Includes(to.AddDate(0, 0, 1)))
	})
}
