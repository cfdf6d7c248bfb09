package http

import (
	"net/http"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/payroll"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// GetStats implements PayrollHandler. Optional from/to query params bound
// the window by clock-in date.
func (h *payrollHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	var filter payroll.StatsFilter

	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.BadRequest(w, "from must be a YYYY-MM-DD date", nil)
			return
		}
		filter.From = &parsed
	}
	if to := r.URL.Query().Get("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			response.BadRequest(w, "to must be a YYYY-MM-DD date", nil)
			return
		}
		filter.To = &parsed
	}

	result, err := h.payrollService.Stats(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
