package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	App          AppConfig
	AutoClockOut AutoClockOutConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AutoClockOutConfig holds the policy for the nightly reconciliation job.
// DefaultTime is a 24-hour wall-clock time in "HH:MM" format.
type AutoClockOutConfig struct {
	Enabled     bool
	DefaultTime string
	LogEvents   bool
}

func Load() (*Config, error) {
	// .env is optional; deployments may set env vars directly
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Auto clock-out policy
	enabled, err := strconv.ParseBool(getEnv("AUTO_CLOCK_OUT_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CLOCK_OUT_ENABLED: %w", err)
	}
	logEvents, err := strconv.ParseBool(getEnv("AUTO_CLOCK_OUT_LOG_EVENTS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CLOCK_OUT_LOG_EVENTS: %w", err)
	}

	config.AutoClockOut = AutoClockOutConfig{
		Enabled:     enabled,
		DefaultTime: getEnv("AUTO_CLOCK_OUT_TIME", "17:30"),
		LogEvents:   logEvents,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if _, _, err := ParseClockTime(c.AutoClockOut.DefaultTime); err != nil {
		return fmt.Errorf("invalid AUTO_CLOCK_OUT_TIME: %w", err)
	}
	return nil
}

// ParseClockTime parses a 24-hour "HH:MM" string into hour and minute.
func ParseClockTime(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("%q is not in HH:MM format", s)
	}
	hour, err = strconv.Atoi(s[:2])
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not in HH:MM format", s)
	}
	minute, err = strconv.Atoi(s[3:])
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not in HH:MM format", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%q is out of range for a 24-hour clock", s)
	}
	return hour, minute, nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
