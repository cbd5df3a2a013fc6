package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/oidpl/workforce-backend-go/internal/config"
	appHTTP "github.com/oidpl/workforce-backend-go/internal/handler/http"
	"github.com/oidpl/workforce-backend-go/internal/pkg/clock"
	"github.com/oidpl/workforce-backend-go/internal/pkg/cron"
	"github.com/oidpl/workforce-backend-go/internal/pkg/database"
	"github.com/oidpl/workforce-backend-go/internal/pkg/geocode"
	"github.com/oidpl/workforce-backend-go/internal/pkg/jwt"
	"github.com/oidpl/workforce-backend-go/internal/pkg/push"
	"github.com/oidpl/workforce-backend-go/internal/pkg/sse"
	"github.com/oidpl/workforce-backend-go/internal/pkg/storage"
	"github.com/oidpl/workforce-backend-go/internal/repository/postgresql"
	authService "github.com/oidpl/workforce-backend-go/internal/service/auth"
	employeeService "github.com/oidpl/workforce-backend-go/internal/service/employee"
	holidayService "github.com/oidpl/workforce-backend-go/internal/service/holiday"
	leaveService "github.com/oidpl/workforce-backend-go/internal/service/leave"
	notificationService "github.com/oidpl/workforce-backend-go/internal/service/notification"
	payslipService "github.com/oidpl/workforce-backend-go/internal/service/payslip"
	trackingService "github.com/oidpl/workforce-backend-go/internal/service/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	historyRepo := postgresql.NewHistoryRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	salarySlipRepo := postgresql.NewSalarySlipRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	var geocoder geocode.Geocoder
	if cfg.Geocode.GoogleAPIKey != "" {
		geocoder = geocode.NewGoogleGeocoder(cfg.Geocode.GoogleAPIKey)
	} else {
		geocoder = geocode.Disabled()
	}

	hub := sse.NewHub()
	pushSender := push.NewExpoSender()
	systemClock := clock.System()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, employeeRepo, hub, pushSender, systemClock)
	authSvc := authService.NewAuthService(employeeRepo, jwtService, authService.AdminCredentials{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
		Name:         cfg.Admin.Name,
	})
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileStorage)
	trackingSvc := trackingService.NewTrackingService(employeeRepo, historyRepo, notificationSvc, geocoder, hub, txManager, systemClock)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, leaveBalanceRepo, employeeRepo, notificationRepo, notificationSvc, txManager, systemClock)
	payslipSvc := payslipService.NewSalarySlipService(salarySlipRepo, employeeRepo, fileStorage, notificationSvc)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, systemClock)

	scheduler := cron.NewScheduler()
	cron.NewTrackingJobs(trackingSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Tracking:     appHTTP.NewTrackingHandler(trackingSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, jwtService, hub),
		Payslip:      appHTTP.NewPayslipHandler(payslipSvc),
		Holiday:      appHTTP.NewHolidayHandler(holidaySvc),
	}, cfg.App.AllowedOrigins, cfg.Storage.BasePath)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
