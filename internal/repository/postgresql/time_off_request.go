package postgresql

import (
	"context"
	"errors"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) timeoff.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

// Create implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req timeoff.Request) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO time_off_requests
			(id, employee_id, request_type, start_date, end_date, duration_days, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, string(req.RequestType),
		req.StartDate, req.EndDate, req.DurationDays, req.Notes, string(req.Status),
	).Scan(&req.CreatedAt)
	if err != nil {
		return timeoff.Request{}, err
	}
	return req, nil
}

// GetByID implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT r.id, r.employee_id, r.request_type, r.start_date, r.end_date,
		       r.duration_days, r.notes, r.status, r.created_at, r.updated_at,
		       e.name AS employee_name
		FROM time_off_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1
	`
	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, err
	}
	return req, nil
}

func scanRequest(row pgx.Row) (timeoff.Request, error) {
	var req timeoff.Request
	var reqType, status string
	err := row.Scan(
		&req.ID, &req.EmployeeID, &reqType, &req.StartDate, &req.EndDate,
		&req.DurationDays, &req.Notes, &status, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName,
	)
	if err != nil {
		return timeoff.Request{}, err
	}
	req.RequestType = timeoff.RequestType(reqType)
	req.Status = timeoff.RequestStatus(status)
	return req, nil
}

// List implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) List(ctx context.Context, filter timeoff.RequestFilter) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT r.id, r.employee_id, r.request_type, r.start_date, r.end_date,
		       r.duration_days, r.notes, r.status, r.created_at, r.updated_at,
		       e.name AS employee_name
		FROM time_off_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE 1=1
	`
	args := make([]interface{}, 0, 2)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND r.status = $1`
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		if len(args) == 1 {
			query += ` AND r.employee_id = $1`
		} else {
			query += ` AND r.employee_id = $2`
		}
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]timeoff.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateStatus implements timeoff.RequestRepository. Notes are replaced
// only when provided, matching the admin review form behavior.
func (r *requestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status timeoff.RequestStatus, notes *string) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_off_requests
		SET status = $2,
		    notes = COALESCE($3, notes),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, employee_id, request_type, start_date, end_date,
		          duration_days, notes, status, created_at, updated_at
	`
	var req timeoff.Request
	var reqType, statusStr string
	err := q.QueryRow(ctx, query, id, string(status), notes).Scan(
		&req.ID, &req.EmployeeID, &reqType, &req.StartDate, &req.EndDate,
		&req.DurationDays, &req.Notes, &statusStr, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, err
	}
	req.RequestType = timeoff.RequestType(reqType)
	req.Status = timeoff.RequestStatus(statusStr)
	return req, nil
}

// Delete implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM time_off_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return timeoff.ErrRequestNotFound
	}
	return nil
}
