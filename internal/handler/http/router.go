package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	appConfig config.AppConfig,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	timeOffHandler TimeOffHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Get("/{id}", employeeHandler.GetEmployee)
			r.Put("/{id}", employeeHandler.UpdateEmployee)
			r.Delete("/{id}", employeeHandler.DeleteEmployee)
		})

		r.Route("/clock", func(r chi.Router) {
			r.Post("/in", attendanceHandler.ClockIn)
			r.Post("/out", attendanceHandler.ClockOut)
		})

		r.Route("/time-records", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListTimeRecords)
			r.Put("/{id}", attendanceHandler.UpdateTimeRecord)
			r.Delete("/{id}", attendanceHandler.DeleteTimeRecord)
		})

		r.Post("/attendance/reconcile", attendanceHandler.Reconcile)

		r.Get("/payroll/stats", payrollHandler.GetStats)

		r.Route("/time-off", func(r chi.Router) {
			r.Route("/requests", func(r chi.Router) {
				r.Get("/", timeOffHandler.ListRequests)
				r.Post("/", timeOffHandler.CreateRequest)
				r.Get("/{id}", timeOffHandler.GetRequest)
				r.Put("/{id}/status", timeOffHandler.SetRequestStatus)
				r.Delete("/{id}", timeOffHandler.DeleteRequest)
			})

			r.Route("/allocations", func(r chi.Router) {
				r.Get("/", timeOffHandler.ListAllocations)
				r.Post("/", timeOffHandler.UpsertAllocation)
			})
		})
	})
	return r
}
