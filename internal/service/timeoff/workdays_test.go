package timeoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDays(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected float64
	}{
		// 2026-03-02 is a Monday
		{"full work week", day(2026, 3, 2), day(2026, 3, 6), 5},
		{"single weekday", day(2026, 3, 4), day(2026, 3, 4), 1},
		{"single saturday", day(2026, 3, 7), day(2026, 3, 7), 0},
		{"weekend only", day(2026, 3, 7), day(2026, 3, 8), 0},
		{"spanning a weekend", day(2026, 3, 6), day(2026, 3, 9), 2},
		{"two full weeks", day(2026, 3, 2), day(2026, 3, 13), 10},
		{"start after end", day(2026, 3, 6), day(2026, 3, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BusinessDays(tt.start, tt.end))
		})
	}
}
