package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yayasan-cendekia/hrops-backend-go/internal/config"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/fixtures"
	appHTTP "github.com/yayasan-cendekia/hrops-backend-go/internal/handler/http"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/cron"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/jwt"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/sse"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/storage"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/yayasan-cendekia/hrops-backend-go/internal/service/attendance"
	leaveService "github.com/yayasan-cendekia/hrops-backend-go/internal/service/leave"
	notificationService "github.com/yayasan-cendekia/hrops-backend-go/internal/service/notification"
	scheduleService "github.com/yayasan-cendekia/hrops-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	approvalChainRepo := postgresql.NewApprovalChainRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	// Approval chains are configuration data; seed the defaults once and let
	// operators edit the table afterwards.
	if err := approvalChainRepo.Seed(context.Background(), fixtures.DefaultApprovalChains()); err != nil {
		log.Fatal("Failed to seed approval chains:", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	hub := sse.NewHub()
	logger := slog.Default()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, logger, 2)
	scheduleSvc := scheduleService.NewScheduleService(workScheduleRepo, db, loc)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		officeRepo,
		scheduleSvc,
		db,
		loc,
	)
	reconciler := leaveService.NewReconciler(attendanceRepo, logger)
	workflowSvc := leaveService.NewWorkflowService(
		leaveRequestRepo,
		approvalChainRepo,
		employeeRepo,
		reconciler,
		db,
		notificationSvc,
		loc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(workflowSvc, fileStorage)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	officeHandler := appHTTP.NewOfficeHandler(officeRepo)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, JWTService, hub)

	logLevel := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			FrontendURL: cfg.App.FrontendURL,
			Env:         cfg.App.Env,
			LogLevel:    logLevel,
		},
		JWTService,
		attendanceHandler,
		leaveHandler,
		scheduleHandler,
		officeHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	absenceJobs := cron.NewAbsenceJobs(attendanceRepo, attendanceSvc, employeeRepo, scheduleSvc, notificationSvc, loc)
	absenceJobs.RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server running", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	scheduler.Stop()
	if err := notificationSvc.Shutdown(shutdownCtx); err != nil {
		slog.Error("Notification service shutdown failed", "error", err)
	}
}
