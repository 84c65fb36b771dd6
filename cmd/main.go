package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/book_session"
	cancelSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/cancel_session"
	confirmSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/confirm_session"
	createOverrideHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/create_override"
	createWeeklyRuleHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/create_weekly_rule"
	deleteOverrideHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/delete_override"
	deleteWeeklyRuleHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/delete_weekly_rule"
	endSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/end_session"
	getAvailableSlotsHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/get_available_slots"
	getMentorAvailabilityHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/get_mentor_availability"
	getMentorSessionsHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/get_mentor_sessions"
	getSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/get_session"
	getUserSessionsHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/get_user_sessions"
	getUserStatisticsHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/get_user_statistics"
	markNoShowHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/mark_no_show"
	rejectSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/reject_session"
	rescheduleSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/reschedule_session"
	startSessionHandler "github.com/talentbridge/MentorBookingService/internal/api/handlers/start_session"
	"github.com/talentbridge/MentorBookingService/internal/api/middleware"
	"github.com/talentbridge/MentorBookingService/internal/config"
	availabilityRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/availability"
	mentorRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/mentor"
	sessionRepo "github.com/talentbridge/MentorBookingService/internal/infra/storage/session"
	availabilityService "github.com/talentbridge/MentorBookingService/internal/service/availability"
	sessionsService "github.com/talentbridge/MentorBookingService/internal/service/sessions"
	bookSessionUC "github.com/talentbridge/MentorBookingService/internal/usecase/book_session"
	resolveAvailabilityUC "github.com/talentbridge/MentorBookingService/internal/usecase/resolve_availability"
	"github.com/talentbridge/MentorBookingService/pkg/dbmetrics"
	"github.com/talentbridge/MentorBookingService/pkg/logger"
	"github.com/talentbridge/MentorBookingService/pkg/metrics"
	"github.com/talentbridge/MentorBookingService/pkg/simpletxmanager"
	"github.com/talentbridge/MentorBookingService/pkg/txmanager"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MentorBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (if enabled)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure the connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize repositories (with or without metrics)
	var (
		mentorRepository       *mentorRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		sessionRepository      *sessionRepo.Repository
	)

	// Transaction manager interface shared by the booking usecase and the
	// sessions service.
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		mentorRepository = mentorRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		mentorRepository = mentorRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Initialize use cases
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		mentorRepository,
		availabilityRepository,
		log,
	)

	bookSessionUseCase := bookSessionUC.NewUseCase(
		mentorRepository,
		sessionRepository,
		availabilityRepository,
		resolveAvailabilityUseCase,
		txMgr,
		bookSessionUC.Config{SplitOnBooking: cfg.Booking.SplitOnBooking},
		log,
	)

	// Initialize services
	sessionsSvc := sessionsService.NewService(
		sessionRepository,
		mentorRepository,
		resolveAvailabilityUseCase,
		txMgr,
		sessionsService.Config{StartGraceMinutes: cfg.Booking.StartGraceMinutes},
		log,
	)

	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		mentorRepository,
		log,
	)

	// Initialize handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(resolveAvailabilityUseCase, log)
	getMentorAvailability := getMentorAvailabilityHandler.NewHandler(availabilitySvc, log)
	bookSession := bookSessionHandler.NewHandler(bookSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	getUserSessions := getUserSessionsHandler.NewHandler(sessionsSvc, log)
	getUserStatistics := getUserStatisticsHandler.NewHandler(sessionsSvc, log)
	getMentorSessions := getMentorSessionsHandler.NewHandler(sessionsSvc, log)
	confirmSession := confirmSessionHandler.NewHandler(sessionsSvc, log)
	rejectSession := rejectSessionHandler.NewHandler(sessionsSvc, log)
	startSession := startSessionHandler.NewHandler(sessionsSvc, log)
	endSession := endSessionHandler.NewHandler(sessionsSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionsSvc, log)
	rescheduleSession := rescheduleSessionHandler.NewHandler(sessionsSvc, log)
	markNoShow := markNoShowHandler.NewHandler(sessionsSvc, log)
	createWeeklyRule := createWeeklyRuleHandler.NewHandler(availabilitySvc, log)
	deleteWeeklyRule := deleteWeeklyRuleHandler.NewHandler(availabilitySvc, log)
	createOverride := createOverrideHandler.NewHandler(availabilitySvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(availabilitySvc, log)

	// Set up the router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (public, no authentication)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (no authentication)
	// ============================================================

	// Resolved bookable slots for a mentor
	api.HandleFunc("/mentors/{mentorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Declared calendar: weekly rules and overrides
	api.HandleFunc("/mentors/{mentorId}/availability",
		getMentorAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Sessions ---
	// Book a session with a mentor
	protected.HandleFunc("/mentors/{mentorId}/sessions", bookSession.Handle).Methods(http.MethodPost)

	// Get a session by ID
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Mentee session history and statistics
	protected.HandleFunc("/users/{userId}/sessions", getUserSessions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/sessions/statistics", getUserStatistics.Handle).Methods(http.MethodGet)

	// Mentor-side session list
	protected.HandleFunc("/mentors/{mentorId}/sessions", getMentorSessions.Handle).Methods(http.MethodGet)

	// Session lifecycle
	protected.HandleFunc("/sessions/{sessionId}/confirm", confirmSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/reject", rejectSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/start", startSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/end", endSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sessions/{sessionId}/reschedule", rescheduleSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/no-show", markNoShow.Handle).Methods(http.MethodPost)

	// --- Availability management (mentor only) ---
	protected.HandleFunc("/mentors/{mentorId}/availability/rules", createWeeklyRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/rules/{ruleId}", deleteWeeklyRule.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/mentors/{mentorId}/availability/overrides", createOverride.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/overrides/{overrideId}", deleteOverride.Handle).Methods(http.MethodDelete)

	// Create the HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Stop the connection pool metrics collector
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
