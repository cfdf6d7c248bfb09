package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.TimeRecordRepository
	employee.EmployeeRepository
}

func NewAttendanceService(
	db *database.DB,
	timeRecordRepository attendance.TimeRecordRepository,
	employeeRepository employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		TimeRecordRepository: timeRecordRepository,
		EmployeeRepository:   employeeRepository,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeRecordResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.TimeRecordResponse{}, err
	}

	open, err := a.TimeRecordRepository.GetOpenByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.TimeRecordResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}
	if open != nil {
		return attendance.TimeRecordResponse{}, attendance.ErrAlreadyClockedIn
	}

	record, err := a.TimeRecordRepository.Create(ctx, attendance.TimeRecord{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		ClockInTime: time.Now().UTC(),
	})
	if err != nil {
		return attendance.TimeRecordResponse{}, fmt.Errorf("failed to create time record: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeRecordResponse{}, err
	}

	open, err := a.TimeRecordRepository.GetOpenByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.TimeRecordResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}
	if open == nil {
		return attendance.TimeRecordResponse{}, attendance.ErrNotClockedIn
	}

	closed, err := a.TimeRecordRepository.SetClockOut(ctx, open.ID, time.Now().UTC(), false)
	if err != nil {
		return attendance.TimeRecordResponse{}, fmt.Errorf("failed to clock out: %w", err)
	}

	return attendance.ToResponse(closed), nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context) ([]attendance.TimeRecordResponse, error) {
	records, err := a.TimeRecordRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}
	responses := make([]attendance.TimeRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses, nil
}

// UpdateRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateTimeRecordRequest) (attendance.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeRecordResponse{}, err
	}
	record, err := a.TimeRecordRepository.Update(ctx, req)
	if err != nil {
		return attendance.TimeRecordResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// DeleteRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	return a.TimeRecordRepository.Delete(ctx, id)
}
