package postgresql

import (
	"context"
	"errors"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type allocationRepositoryImpl struct {
	db *database.DB
}

func NewAllocationRepository(db *database.DB) timeoff.AllocationRepository {
	return &allocationRepositoryImpl{db: db}
}

const allocationColumns = `id, employee_id, year, pto_total, pto_remaining, sick_total, sick_remaining, created_at, updated_at`

func scanAllocation(row pgx.Row) (timeoff.Allocation, error) {
	var a timeoff.Allocation
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Year,
		&a.PTOTotal, &a.PTORemaining, &a.SickTotal, &a.SickRemaining,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements timeoff.AllocationRepository. The unique index on
// (employee_id, year) makes concurrent bootstrap first-request-wins.
func (r *allocationRepositoryImpl) Create(ctx context.Context, alloc timeoff.Allocation) (timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO time_off_allocations
			(id, employee_id, year, pto_total, pto_remaining, sick_total, sick_remaining, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + allocationColumns
	return scanAllocation(q.QueryRow(ctx, query,
		alloc.EmployeeID, alloc.Year,
		alloc.PTOTotal, alloc.PTORemaining, alloc.SickTotal, alloc.SickRemaining,
	))
}

// GetByID implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + allocationColumns + ` FROM time_off_allocations WHERE id = $1`
	a, err := scanAllocation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Allocation{}, timeoff.ErrAllocationNotFound
		}
		return timeoff.Allocation{}, err
	}
	return a, nil
}

// GetByEmployeeYear implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*timeoff.Allocation, error) {
	return r.getByEmployeeYear(ctx, employeeID, year, false)
}

// GetByEmployeeYearForUpdate implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) GetByEmployeeYearForUpdate(ctx context.Context, employeeID string, year int) (*timeoff.Allocation, error) {
	return r.getByEmployeeYear(ctx, employeeID, year, true)
}

func (r *allocationRepositoryImpl) getByEmployeeYear(ctx context.Context, employeeID string, year int, forUpdate bool) (*timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + allocationColumns + ` FROM time_off_allocations WHERE employee_id = $1 AND year = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	a, err := scanAllocation(q.QueryRow(ctx, query, employeeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListByYear implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) ListByYear(ctx context.Context, year int) ([]timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT a.id, a.employee_id, a.year,
		       a.pto_total, a.pto_remaining, a.sick_total, a.sick_remaining,
		       a.created_at, a.updated_at,
		       e.name AS employee_name
		FROM time_off_allocations a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.year = $1
		ORDER BY e.name
	`
	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocations := make([]timeoff.Allocation, 0)
	for rows.Next() {
		var a timeoff.Allocation
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Year,
			&a.PTOTotal, &a.PTORemaining, &a.SickTotal, &a.SickRemaining,
			&a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// ListByEmployee implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + allocationColumns + ` FROM time_off_allocations WHERE employee_id = $1 AND year = $2`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocations := make([]timeoff.Allocation, 0)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// AdjustRemaining implements timeoff.AllocationRepository. Deltas are
// signed; no floor is applied, so a balance can go negative.
func (r *allocationRepositoryImpl) AdjustRemaining(ctx context.Context, id string, ptoDelta, sickDelta float64) (timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_off_allocations
		SET pto_remaining = pto_remaining + $2,
		    sick_remaining = sick_remaining + $3,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + allocationColumns
	a, err := scanAllocation(q.QueryRow(ctx, query, id, ptoDelta, sickDelta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Allocation{}, timeoff.ErrAllocationNotFound
		}
		return timeoff.Allocation{}, err
	}
	return a, nil
}

// SetTotals implements timeoff.AllocationRepository. Remaining balances
// move by the total deltas so consumed days stay consumed.
func (r *allocationRepositoryImpl) SetTotals(ctx context.Context, id string, ptoTotal, sickTotal float64) (timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_off_allocations
		SET pto_remaining = pto_remaining + ($2 - pto_total),
		    sick_remaining = sick_remaining + ($3 - sick_total),
		    pto_total = $2,
		    sick_total = $3,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + allocationColumns
	a, err := scanAllocation(q.QueryRow(ctx, query, id, ptoTotal, sickTotal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Allocation{}, timeoff.ErrAllocationNotFound
		}
		return timeoff.Allocation{}, err
	}
	return a, nil
}
