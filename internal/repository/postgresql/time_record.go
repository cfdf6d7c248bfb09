package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeRecordRepositoryImpl struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) attendance.TimeRecordRepository {
	return &timeRecordRepositoryImpl{db: db}
}

// Create implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) Create(ctx context.Context, record attendance.TimeRecord) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO time_records (id, employee_id, clock_in_time, clock_out_time, auto_clock_out, created_at, updated_at)
		VALUES ($1, $2, $3, NULL, FALSE, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, record.ID, record.EmployeeID, record.ClockInTime).
		Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.TimeRecord{}, err
	}
	record.ClockOutTime = nil
	record.AutoClockOut = false
	return record, nil
}

// GetByID implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, clock_in_time, clock_out_time, auto_clock_out, created_at, updated_at
		FROM time_records
		WHERE id = $1
	`
	var record attendance.TimeRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.EmployeeID, &record.ClockInTime, &record.ClockOutTime,
		&record.AutoClockOut, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.TimeRecord{}, err
	}
	return record, nil
}

// GetOpenByEmployee implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, clock_in_time, clock_out_time, auto_clock_out, created_at, updated_at
		FROM time_records
		WHERE employee_id = $1 AND clock_out_time IS NULL
	`
	var record attendance.TimeRecord
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&record.ID, &record.EmployeeID, &record.ClockInTime, &record.ClockOutTime,
		&record.AutoClockOut, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListOpen implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) ListOpen(ctx context.Context) ([]attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, clock_in_time, clock_out_time, auto_clock_out, created_at, updated_at
		FROM time_records
		WHERE clock_out_time IS NULL
		ORDER BY clock_in_time
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.TimeRecord, 0)
	for rows.Next() {
		var record attendance.TimeRecord
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.ClockInTime, &record.ClockOutTime,
			&record.AutoClockOut, &record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// List implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) List(ctx context.Context) ([]attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT t.id, t.employee_id, t.clock_in_time, t.clock_out_time, t.auto_clock_out,
		       t.created_at, t.updated_at,
		       e.name AS employee_name
		FROM time_records t
		JOIN employees e ON t.employee_id = e.id
		ORDER BY t.clock_in_time DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.TimeRecord, 0)
	for rows.Next() {
		var record attendance.TimeRecord
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.ClockInTime, &record.ClockOutTime,
			&record.AutoClockOut, &record.CreatedAt, &record.UpdatedAt,
			&record.EmployeeName,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// SetClockOut implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) SetClockOut(ctx context.Context, id string, clockOut time.Time, auto bool) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_records
		SET clock_out_time = $2, auto_clock_out = $3, updated_at = NOW()
		WHERE id = $1 AND clock_out_time IS NULL
		RETURNING id, employee_id, clock_in_time, clock_out_time, auto_clock_out, created_at, updated_at
	`
	var record attendance.TimeRecord
	err := q.QueryRow(ctx, query, id, clockOut, auto).Scan(
		&record.ID, &record.EmployeeID, &record.ClockInTime, &record.ClockOutTime,
		&record.AutoClockOut, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.TimeRecord{}, err
	}
	return record, nil
}

// CloseBatch implements attendance.TimeRecordRepository. The clock_out_time
// IS NULL guard makes each row close at most once even if two reconciler
// runs race; the caller's transaction makes the batch all-or-nothing.
func (r *timeRecordRepositoryImpl) CloseBatch(ctx context.Context, updates []attendance.CloseUpdate) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_records
		SET clock_out_time = $2, auto_clock_out = $3, updated_at = NOW()
		WHERE id = $1 AND clock_out_time IS NULL
	`
	for _, u := range updates {
		if _, err := q.Exec(ctx, query, u.ID, u.ClockOutTime, u.AutoClockOut); err != nil {
			return fmt.Errorf("close time record %s: %w", u.ID, err)
		}
	}
	return nil
}

// Update implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) Update(ctx context.Context, req attendance.UpdateTimeRecordRequest) (attendance.TimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	clockIn, err := time.Parse(time.RFC3339, req.ClockInTime)
	if err != nil {
		return attendance.TimeRecord{}, fmt.Errorf("parse clock-in time: %w", err)
	}
	var clockOut *time.Time
	if req.ClockOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ClockOutTime)
		if err != nil {
			return attendance.TimeRecord{}, fmt.Errorf("parse clock-out time: %w", err)
		}
		clockOut = &t
	}

	query := `
		UPDATE time_records
		SET clock_in_time = $2, clock_out_time = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, employee_id, clock_in_time, clock_out_time, auto_clock_out, created_at, updated_at
	`
	var record attendance.TimeRecord
	err = q.QueryRow(ctx, query, req.ID, clockIn, clockOut).Scan(
		&record.ID, &record.EmployeeID, &record.ClockInTime, &record.ClockOutTime,
		&record.AutoClockOut, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.TimeRecord{}, err
	}
	return record, nil
}

// Delete implements attendance.TimeRecordRepository.
func (r *timeRecordRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM time_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}
