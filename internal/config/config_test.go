package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime_Valid(t *testing.T) {
	h, m, err := ParseClockTime("17:30")
	require.NoError(t, err)
	assert.Equal(t, 17, h)
	assert.Equal(t, 30, m)

	h, m, err = ParseClockTime("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, h)
	assert.Equal(t, 0, m)

	h, m, err = ParseClockTime("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)
}

func TestParseClockTime_Invalid(t *testing.T) {
	cases := []string{"", "1730", "24:00", "12:60", "7:30", "ab:cd", "12:345"}
	for _, c := range cases {
		_, _, err := ParseClockTime(c)
		assert.Error(t, err, "expected %q to be rejected", c)
	}
}

func TestConfigValidate_RequiresWellFormedCutoff(t *testing.T) {
	cfg := &Config{
		Database:     DatabaseConfig{Password: "secret"},
		AutoClockOut: AutoClockOutConfig{Enabled: true, DefaultTime: "25:00"},
	}
	assert.Error(t, cfg.Validate())

	cfg.AutoClockOut.DefaultTime = "17:30"
	assert.NoError(t, cfg.Validate())
}
