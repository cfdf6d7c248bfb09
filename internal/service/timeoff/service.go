package timeoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timeclock-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Default allocation granted the first time an employee/year is seen.
const (
	DefaultPTODays  = 10.0
	DefaultSickDays = 5.0
)

type TimeOffServiceImpl struct {
	db *database.DB
	timeoff.AllocationRepository
	timeoff.RequestRepository
	employee.EmployeeRepository
}

func NewTimeOffService(
	db *database.DB,
	allocationRepository timeoff.AllocationRepository,
	requestRepository timeoff.RequestRepository,
	employeeRepository employee.EmployeeRepository,
) timeoff.TimeOffService {
	return &TimeOffServiceImpl{
		db:                   db,
		AllocationRepository: allocationRepository,
		RequestRepository:    requestRepository,
		EmployeeRepository:   employeeRepository,
	}
}

// CreateRequest implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) CreateRequest(ctx context.Context, req timeoff.CreateRequestRequest) (timeoff.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return timeoff.RequestResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if startDate.After(endDate) {
		return timeoff.RequestResponse{}, timeoff.ErrInvalidDateRange
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return timeoff.RequestResponse{}, err
	}

	duration := BusinessDays(startDate, endDate)
	if req.DurationDays != nil {
		duration = *req.DurationDays
	}

	requestType := timeoff.RequestType(req.RequestType)

	// The bootstrap allocation commits on its own: a rejected request must
	// not roll back the default allocation it caused to exist.
	if requestType.CountsAgainstAllocation() {
		alloc, err := s.GetOrCreateAllocation(ctx, req.EmployeeID, startDate.Year())
		if err != nil {
			return timeoff.RequestResponse{}, err
		}
		if remaining := alloc.Remaining(requestType); duration > remaining {
			return timeoff.RequestResponse{}, &timeoff.QuotaExceededError{
				RequestType: requestType,
				Requested:   duration,
				Available:   remaining,
			}
		}
	}

	created, err := s.RequestRepository.Create(ctx, timeoff.Request{
		ID:           uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		RequestType:  requestType,
		StartDate:    startDate,
		EndDate:      endDate,
		DurationDays: duration,
		Notes:        req.Notes,
		Status:       timeoff.RequestStatusPending,
	})
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	return timeoff.ToRequestResponse(created), nil
}

// GetOrCreateAllocation returns the allocation for the employee/year,
// creating one with default totals when none exists. The row lock plus the
// unique (employee_id, year) index make the bootstrap first-request-wins.
func (s *TimeOffServiceImpl) GetOrCreateAllocation(ctx context.Context, employeeID string, year int) (timeoff.Allocation, error) {
	var alloc timeoff.Allocation
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.AllocationRepository.GetByEmployeeYearForUpdate(txCtx, employeeID, year)
		if err != nil {
			return fmt.Errorf("failed to get allocation: %w", err)
		}
		if existing != nil {
			alloc = *existing
			return nil
		}

		created, err := s.AllocationRepository.Create(txCtx, timeoff.Allocation{
			EmployeeID:    employeeID,
			Year:          year,
			PTOTotal:      DefaultPTODays,
			PTORemaining:  DefaultPTODays,
			SickTotal:     DefaultSickDays,
			SickRemaining: DefaultSickDays,
		})
		if err != nil {
			return fmt.Errorf("failed to create default allocation: %w", err)
		}
		alloc = created
		return nil
	})
	if err != nil {
		return timeoff.Allocation{}, err
	}
	return alloc, nil
}

// SetRequestStatus implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) SetRequestStatus(ctx context.Context, req timeoff.SetStatusRequest) (timeoff.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return timeoff.RequestResponse{}, err
	}
	newStatus := timeoff.RequestStatus(req.Status)

	var updated timeoff.Request
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.RequestRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		// Confirming the current status again is a no-op.
		if request.Status == newStatus {
			updated = request
			return nil
		}
		if request.Status.Terminal() {
			return timeoff.ErrRequestAlreadyProcessed
		}

		updated, err = s.RequestRepository.UpdateStatus(txCtx, req.ID, newStatus, req.Notes)
		if err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		if newStatus == timeoff.RequestStatusApproved {
			if err := s.adjustAllocation(txCtx, request, -request.DurationDays); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	return timeoff.ToRequestResponse(updated), nil
}

// adjustAllocation applies a signed day delta to the request's allocation
// track. A request whose employee/year has no allocation row is skipped:
// there is no balance to adjust.
func (s *TimeOffServiceImpl) adjustAllocation(ctx context.Context, request timeoff.Request, delta float64) error {
	if !request.RequestType.CountsAgainstAllocation() {
		return nil
	}

	alloc, err := s.AllocationRepository.GetByEmployeeYearForUpdate(ctx, request.EmployeeID, request.StartDate.Year())
	if err != nil {
		return fmt.Errorf("failed to get allocation: %w", err)
	}
	if alloc == nil {
		return nil
	}

	var ptoDelta, sickDelta float64
	if request.RequestType == timeoff.RequestTypeSick {
		sickDelta = delta
	} else {
		ptoDelta = delta
	}

	adjusted, err := s.AllocationRepository.AdjustRemaining(ctx, alloc.ID, ptoDelta, sickDelta)
	if err != nil {
		return fmt.Errorf("failed to adjust allocation: %w", err)
	}

	// Balances are deliberately not clamped at zero. An allocation shrunk
	// after the request was created can go negative here.
	if remaining := adjusted.Remaining(request.RequestType); remaining < 0 {
		slog.Warn("time-off balance went negative",
			"employee_id", request.EmployeeID,
			"year", request.StartDate.Year(),
			"request_type", request.RequestType,
			"remaining", remaining,
		)
	}
	return nil
}

// DeleteRequest implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) DeleteRequest(ctx context.Context, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.RequestRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		// An approved request gave up days; deleting it gives them back.
		if request.Status == timeoff.RequestStatusApproved {
			if err := s.adjustAllocation(txCtx, request, request.DurationDays); err != nil {
				return err
			}
		}

		return s.RequestRepository.Delete(txCtx, id)
	})
}

// GetRequest implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) GetRequest(ctx context.Context, id string) (timeoff.RequestResponse, error) {
	request, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	return timeoff.ToRequestResponse(request), nil
}

// ListRequests implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListRequests(ctx context.Context, filter timeoff.RequestFilter) ([]timeoff.RequestResponse, error) {
	requests, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list time-off requests: %w", err)
	}
	responses := make([]timeoff.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, timeoff.ToRequestResponse(r))
	}
	return responses, nil
}

// UpsertAllocation implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) UpsertAllocation(ctx context.Context, req timeoff.UpsertAllocationRequest) (timeoff.AllocationResponse, error) {
	if err := req.Validate(); err != nil {
		return timeoff.AllocationResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return timeoff.AllocationResponse{}, err
	}

	var result timeoff.Allocation
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.AllocationRepository.GetByEmployeeYearForUpdate(txCtx, req.EmployeeID, req.Year)
		if err != nil {
			return fmt.Errorf("failed to get allocation: %w", err)
		}

		if existing == nil {
			ptoTotal := DefaultPTODays
			if req.PTOTotal != nil {
				ptoTotal = *req.PTOTotal
			}
			sickTotal := DefaultSickDays
			if req.SickTotal != nil {
				sickTotal = *req.SickTotal
			}
			result, err = s.AllocationRepository.Create(txCtx, timeoff.Allocation{
				EmployeeID:    req.EmployeeID,
				Year:          req.Year,
				PTOTotal:      ptoTotal,
				PTORemaining:  ptoTotal,
				SickTotal:     sickTotal,
				SickRemaining: sickTotal,
			})
			if err != nil {
				return fmt.Errorf("failed to create allocation: %w", err)
			}
			return nil
		}

		// Totals move; consumption stays. Remaining shifts by the delta
		// between the new and old totals.
		ptoTotal := existing.PTOTotal
		if req.PTOTotal != nil {
			ptoTotal = *req.PTOTotal
		}
		sickTotal := existing.SickTotal
		if req.SickTotal != nil {
			sickTotal = *req.SickTotal
		}
		result, err = s.AllocationRepository.SetTotals(txCtx, existing.ID, ptoTotal, sickTotal)
		if err != nil {
			return fmt.Errorf("failed to update allocation totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return timeoff.AllocationResponse{}, err
	}
	return timeoff.ToAllocationResponse(result), nil
}

// ListAllocations implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListAllocations(ctx context.Context, employeeID string, year int) ([]timeoff.AllocationResponse, error) {
	var (
		allocations []timeoff.Allocation
		err         error
	)
	if employeeID != "" {
		allocations, err = s.AllocationRepository.ListByEmployee(ctx, employeeID, year)
	} else {
		allocations, err = s.AllocationRepository.ListByYear(ctx, year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	responses := make([]timeoff.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		responses = append(responses, timeoff.ToAllocationResponse(a))
	}
	return responses, nil
}
