package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ListTimeRecords(w http.ResponseWriter, r *http.Request)
	UpdateTimeRecord(w http.ResponseWriter, r *http.Request)
	DeleteTimeRecord(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	autoClockOut      config.AutoClockOutConfig
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, autoClockOut config.AutoClockOutConfig) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		autoClockOut:      autoClockOut,
	}
}

// ClockIn implements AttendanceHandler
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", result)
}

// ClockOut implements AttendanceHandler
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", result)
}

// ListTimeRecords implements AttendanceHandler
func (h *attendanceHandlerImpl) ListTimeRecords(w http.ResponseWriter, r *http.Request) {
	results, err := h.attendanceService.ListRecords(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateTimeRecord implements AttendanceHandler
func (h *attendanceHandlerImpl) UpdateTimeRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Time record ID is required", nil)
		return
	}

	var req attendance.UpdateTimeRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.UpdateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record updated successfully", result)
}

// DeleteTimeRecord implements AttendanceHandler
func (h *attendanceHandlerImpl) DeleteTimeRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Time record ID is required", nil)
		return
	}

	if err := h.attendanceService.DeleteRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record deleted successfully", nil)
}

// Reconcile implements AttendanceHandler. It runs the same sweep as the
// nightly job, on demand, with the configured policy. The body may carry
// a one-off cutoff override.
func (h *attendanceHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	policy := attendance.ReconcilePolicy{
		Enabled:     h.autoClockOut.Enabled,
		DefaultTime: h.autoClockOut.DefaultTime,
	}

	var body struct {
		DefaultTime *string `json:"defaultTime"`
	}
	// The body is optional; a missing or empty one keeps the configured policy
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.DefaultTime != nil {
		if _, _, err := config.ParseClockTime(*body.DefaultTime); err != nil {
			response.BadRequest(w, "defaultTime must be in 24-hour HH:MM format", nil)
			return
		}
		policy.DefaultTime = *body.DefaultTime
	}

	result, err := h.attendanceService.ReconcileOpenSessions(r.Context(), time.Now(), policy)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	closed := make([]attendance.TimeRecordResponse, 0, len(result.Records))
	for _, rec := range result.Records {
		closed = append(closed, attendance.ToResponse(rec))
	}

	response.Success(w, map[string]interface{}{
		"closedCount":     result.ClosedCount,
		"usedDefaultTime": result.UsedDefaultTime,
		"records":         closed,
	})
}
