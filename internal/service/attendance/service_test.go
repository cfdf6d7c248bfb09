package attendance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAttendanceDB *database.DB

func attendanceTestInit(t *testing.T) attendance.AttendanceService {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testAttendanceDB == nil {
		var err error
		testAttendanceDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			t.Fatalf("Failed to connect to test database: %v", err)
		}
		schema, err := os.ReadFile("../../../migrations/0001_init.sql")
		require.NoError(t, err)
		_, err = testAttendanceDB.Exec(context.Background(), string(schema))
		require.NoError(t, err)
	}

	return NewAttendanceService(
		testAttendanceDB,
		postgresql.NewTimeRecordRepository(testAttendanceDB),
		postgresql.NewEmployeeRepository(testAttendanceDB),
	)
}

func truncateAttendanceTables(t *testing.T, ctx context.Context) {
	tables := []string{"time_records", "employees"}
	for _, table := range tables {
		_, err := testAttendanceDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createAttendanceTestEmployee(t *testing.T, ctx context.Context) string {
	var id string
	err := testAttendanceDB.QueryRow(ctx, `
		INSERT INTO employees (id, name, pay_rate, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Test Employee', 25.00, NOW(), NOW())
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertOpenSession(t *testing.T, ctx context.Context, employeeID string, clockIn time.Time) string {
	var id string
	err := testAttendanceDB.QueryRow(ctx, `
		INSERT INTO time_records (id, employee_id, clock_in_time, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		RETURNING id
	`, employeeID, clockIn).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestClockInAndOut(t *testing.T) {
	svc := attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)
	employeeID := createAttendanceTestEmployee(t, ctx)

	record, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: employeeID})
	require.NoError(t, err)
	assert.Equal(t, employeeID, record.EmployeeID)
	assert.Nil(t, record.ClockOutTime)
	assert.False(t, record.AutoClockOut)

	// A second clock-in while a session is open is rejected
	_, err = svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: employeeID})
	assert.True(t, errors.Is(err, attendance.ErrAlreadyClockedIn))

	closed, err := svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: employeeID})
	require.NoError(t, err)
	assert.NotNil(t, closed.ClockOutTime)
	assert.False(t, closed.AutoClockOut)

	// No open session left
	_, err = svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: employeeID})
	assert.True(t, errors.Is(err, attendance.ErrNotClockedIn))

	// Clocking in again opens a fresh session
	_, err = svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: employeeID})
	require.NoError(t, err)
}

func TestReconcileClosesOpenSessions(t *testing.T) {
	svc := attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)

	first := createAttendanceTestEmployee(t, ctx)
	second := createAttendanceTestEmployee(t, ctx)
	third := createAttendanceTestEmployee(t, ctx)

	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	cutoff := time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)

	insertOpenSession(t, ctx, first, now.Add(-14*time.Hour))
	insertOpenSession(t, ctx, second, now.Add(-13*time.Hour))
	// Opened after the cutoff, closes a minute after clock-in
	lateClockIn := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	lateID := insertOpenSession(t, ctx, third, lateClockIn)

	result, err := svc.ReconcileOpenSessions(ctx, now, attendance.ReconcilePolicy{
		Enabled:     true,
		DefaultTime: "17:30",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ClosedCount)
	assert.True(t, result.UsedDefaultTime)

	for _, rec := range result.Records {
		require.NotNil(t, rec.ClockOutTime)
		assert.True(t, rec.AutoClockOut)
		if rec.ID == lateID {
			assert.Equal(t, lateClockIn.Add(time.Minute), rec.ClockOutTime.UTC())
		} else {
			assert.Equal(t, cutoff, rec.ClockOutTime.UTC())
		}
	}

	var openCount int
	err = testAttendanceDB.QueryRow(ctx, "SELECT COUNT(*) FROM time_records WHERE clock_out_time IS NULL").Scan(&openCount)
	require.NoError(t, err)
	assert.Equal(t, 0, openCount)

	// A second run has nothing left to close
	result, err = svc.ReconcileOpenSessions(ctx, now, attendance.ReconcilePolicy{
		Enabled:     true,
		DefaultTime: "17:30",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ClosedCount)
}

func TestReconcileDisabledPolicy(t *testing.T) {
	svc := attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)
	employeeID := createAttendanceTestEmployee(t, ctx)

	insertOpenSession(t, ctx, employeeID, time.Now().UTC().Add(-8*time.Hour))

	result, err := svc.ReconcileOpenSessions(ctx, time.Now(), attendance.ReconcilePolicy{
		Enabled:     false,
		DefaultTime: "17:30",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ClosedCount)

	var openCount int
	err = testAttendanceDB.QueryRow(ctx, "SELECT COUNT(*) FROM time_records WHERE clock_out_time IS NULL").Scan(&openCount)
	require.NoError(t, err)
	assert.Equal(t, 1, openCount)
}

func TestReconcileLeavesClosedRecordsAlone(t *testing.T) {
	svc := attendanceTestInit(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx)
	employeeID := createAttendanceTestEmployee(t, ctx)

	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var id string
	err := testAttendanceDB.QueryRow(ctx, `
		INSERT INTO time_records (id, employee_id, clock_in_time, clock_out_time, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW(), NOW())
		RETURNING id
	`, employeeID, clockIn, clockOut).Scan(&id)
	require.NoError(t, err)

	result, err := svc.ReconcileOpenSessions(ctx, time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), attendance.ReconcilePolicy{
		Enabled:     true,
		DefaultTime: "17:30",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ClosedCount)

	var storedOut time.Time
	err = testAttendanceDB.QueryRow(ctx, "SELECT clock_out_time FROM time_records WHERE id = $1", id).Scan(&storedOut)
	require.NoError(t, err)
	assert.Equal(t, clockOut, storedOut.UTC())
}
