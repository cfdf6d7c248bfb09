package timeoff

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTimeOffDB *database.DB

func timeOffTestInit(t *testing.T) timeoff.TimeOffService {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testTimeOffDB == nil {
		var err error
		testTimeOffDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			t.Fatalf("Failed to connect to test database: %v", err)
		}
		applySchema(t, testTimeOffDB)
	}

	return NewTimeOffService(
		testTimeOffDB,
		postgresql.NewAllocationRepository(testTimeOffDB),
		postgresql.NewRequestRepository(testTimeOffDB),
		postgresql.NewEmployeeRepository(testTimeOffDB),
	)
}

// applySchema runs the idempotent init migration so tests work against a
// fresh database.
func applySchema(t *testing.T, db *database.DB) {
	schema, err := os.ReadFile("../../../migrations/0001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(context.Background(), string(schema))
	require.NoError(t, err)
}

func truncateTimeOffTables(t *testing.T, ctx context.Context) {
	tables := []string{"time_off_requests", "time_off_allocations", "employees"}
	for _, table := range tables {
		_, err := testTimeOffDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, ctx context.Context) string {
	var id string
	err := testTimeOffDB.QueryRow(ctx, `
		INSERT INTO employees (id, name, pay_rate, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Test Employee', 25.00, NOW(), NOW())
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)
	return id
}

func getAllocation(t *testing.T, ctx context.Context, employeeID string, year int) (ptoTotal, ptoRemaining, sickTotal, sickRemaining float64) {
	err := testTimeOffDB.QueryRow(ctx, `
		SELECT pto_total, pto_remaining, sick_total, sick_remaining
		FROM time_off_allocations
		WHERE employee_id = $1 AND year = $2
	`, employeeID, year).Scan(&ptoTotal, &ptoRemaining, &sickTotal, &sickRemaining)
	require.NoError(t, err)
	return
}

func TestCreateRequestBootstrapsAllocation(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	// 2026-03-02 through 2026-03-04 is Mon-Wed
	created, err := svc.CreateRequest(ctx, timeoff.CreateRequestRequest{
		EmployeeID:  employeeID,
		RequestType: "PTO",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 3.0, created.DurationDays)

	// Pending requests do not touch the balance
	ptoTotal, ptoRemaining, sickTotal, sickRemaining := getAllocation(t, ctx, employeeID, 2026)
	assert.Equal(t, 10.0, ptoTotal)
	assert.Equal(t, 10.0, ptoRemaining)
	assert.Equal(t, 5.0, sickTotal)
	assert.Equal(t, 5.0, sickRemaining)
}

func TestCreateRequestQuotaExceededKeepsBootstrap(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	// Three full weeks, 15 business days, over the 10 day default
	_, err := svc.CreateRequest(ctx, timeoff.CreateRequestRequest{
		EmployeeID:  employeeID,
		RequestType: "PTO",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-20",
	})

	var quotaErr *timeoff.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 15.0, quotaErr.Requested)
	assert.Equal(t, 10.0, quotaErr.Available)

	// The rejection does not roll back the default allocation
	ptoTotal, ptoRemaining, _, _ := getAllocation(t, ctx, employeeID, 2026)
	assert.Equal(t, 10.0, ptoTotal)
	assert.Equal(t, 10.0, ptoRemaining)

	var count int
	err = testTimeOffDB.QueryRow(ctx, "SELECT COUNT(*) FROM time_off_requests").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestApprovalLedgerRoundTrip(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	created, err := svc.CreateRequest(ctx, timeoff.CreateRequestRequest{
		EmployeeID:  employeeID,
		RequestType: "PTO",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
	})
	require.NoError(t, err)

	// Approval debits the balance
	approved, err := svc.SetRequestStatus(ctx, timeoff.SetStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	_, ptoRemaining, _, _ := getAllocation(t, ctx, employeeID, 2026)
	assert.Equal(t, 7.0, ptoRemaining)

	// Re-asserting the same terminal status is a no-op
	again, err := svc.SetRequestStatus(ctx, timeoff.SetStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", again.Status)

	_, ptoRemaining, _, _ = getAllocation(t, ctx, employeeID, 2026)
	assert.Equal(t, 7.0, ptoRemaining)

	// Moving off a terminal status is rejected
	_, err = svc.SetRequestStatus(ctx, timeoff.SetStatusRequest{ID: created.ID, Status: "denied"})
	assert.True(t, errors.Is(err, timeoff.ErrRequestAlreadyProcessed))

	// Deleting the approved request credits the days back
	err = svc.DeleteRequest(ctx, created.ID)
	require.NoError(t, err)

	_, ptoRemaining, _, _ = getAllocation(t, ctx, employeeID, 2026)
	assert.Equal(t, 10.0, ptoRemaining)
}

func TestDenyDoesNotDebit(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	created, err := svc.CreateRequest(ctx, timeoff.CreateRequestRequest{
		EmployeeID:  employeeID,
		RequestType: "Sick",
		StartDate:   "2026-03-03",
		EndDate:     "2026-03-03",
	})
	require.NoError(t, err)

	denied, err := svc.SetRequestStatus(ctx, timeoff.SetStatusRequest{ID: created.ID, Status: "denied"})
	require.NoError(t, err)
	assert.Equal(t, "denied", denied.Status)

	_, _, _, sickRemaining := getAllocation(t, ctx, employeeID, 2026)
	assert.Equal(t, 5.0, sickRemaining)

	// Deleting a denied request credits nothing
	err = svc.DeleteRequest(ctx, created.ID)
	require.NoError(t, err)

	_, _, _, sickRemaining = getAllocation(t, ctx, employeeID, 2026)
	assert.Equal(t, 5.0, sickRemaining)
}

func TestUnpaidRequestSkipsQuota(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	// Far longer than any allocation, but unpaid time is not quota checked
	created, err := svc.CreateRequest(ctx, timeoff.CreateRequestRequest{
		EmployeeID:  employeeID,
		RequestType: "Unpaid",
		StartDate:   "2026-03-02",
		EndDate:     "2026-04-24",
	})
	require.NoError(t, err)

	_, err = svc.SetRequestStatus(ctx, timeoff.SetStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)

	// No allocation row was bootstrapped either
	var count int
	err = testTimeOffDB.QueryRow(ctx, "SELECT COUNT(*) FROM time_off_allocations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpsertAllocationPreservesConsumption(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	created, err := svc.CreateRequest(ctx, timeoff.CreateRequestRequest{
		EmployeeID:  employeeID,
		RequestType: "PTO",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
	})
	require.NoError(t, err)
	_, err = svc.SetRequestStatus(ctx, timeoff.SetStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)

	// 10 total, 7 remaining. Raising the total to 12 keeps 3 days consumed.
	newTotal := 12.0
	result, err := svc.UpsertAllocation(ctx, timeoff.UpsertAllocationRequest{
		EmployeeID: employeeID,
		Year:       2026,
		PTOTotal:   &newTotal,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.0, result.PTOTotal)
	assert.Equal(t, 9.0, result.PTORemaining)
	assert.Equal(t, 5.0, result.SickTotal)
	assert.Equal(t, 5.0, result.SickRemaining)

	// Shrinking below consumption leaves a negative balance
	shrunk := 2.0
	result, err = svc.UpsertAllocation(ctx, timeoff.UpsertAllocationRequest{
		EmployeeID: employeeID,
		Year:       2026,
		PTOTotal:   &shrunk,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.PTOTotal)
	assert.Equal(t, -1.0, result.PTORemaining)
}

func TestUpsertAllocationCreatesFresh(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	ptoTotal := 15.0
	result, err := svc.UpsertAllocation(ctx, timeoff.UpsertAllocationRequest{
		EmployeeID: employeeID,
		Year:       2027,
		PTOTotal:   &ptoTotal,
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, result.PTOTotal)
	assert.Equal(t, 15.0, result.PTORemaining)
	assert.Equal(t, 5.0, result.SickTotal)
	assert.Equal(t, 5.0, result.SickRemaining)
}

func TestCreateRequestInvalidDateRange(t *testing.T) {
	svc := timeOffTestInit(t)
	ctx := context.Background()
	truncateTimeOffTables(t, ctx)
	employeeID := createTestEmployee(t, ctx)

	_, err := svc.CreateRequest(ctx, timeoff.CreateRequestRequest{
		EmployeeID:  employeeID,
		RequestType: "PTO",
		StartDate:   "2026-03-10",
		EndDate:     "2026-03-02",
	})
	assert.True(t, errors.Is(err, timeoff.ErrInvalidDateRange))
}
