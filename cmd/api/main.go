package main

import (
	"fmt"
	"net/http"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	appHTTP "github.com/clockwise-hr/timeclock-backend-go/internal/handler/http"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/cron"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwise-hr/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/clockwise-hr/timeclock-backend-go/internal/service/attendance"
	employeeService "github.com/clockwise-hr/timeclock-backend-go/internal/service/employee"
	payrollService "github.com/clockwise-hr/timeclock-backend-go/internal/service/payroll"
	timeoffService "github.com/clockwise-hr/timeclock-backend-go/internal/service/timeoff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, timeRecordRepo, employeeRepo)
	timeOffSvc := timeoffService.NewTimeOffService(db, allocationRepo, requestRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(timeRecordRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.AutoClockOut).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.AutoClockOut)
	timeOffHandler := appHTTP.NewTimeOffHandler(timeOffSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg.App,
		employeeHandler,
		attendanceHandler,
		timeOffHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
