package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockedTimesHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/blocked_times"
	createBookingHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/create_booking"
	cronJobsHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/cron_jobs"
	getAvailableSlotsHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/get_available_slots"
	listBookingsHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/list_bookings"
	listFailedHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/list_failed_notifications"
	rescheduleBookingHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/reschedule_booking"
	resendNotificationHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/resend_notification"
	scheduleExceptionHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/schedule_exception"
	updateBookingStatusHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/update_booking_status"
	updateCustomerNotesHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/update_customer_notes"
	updateScheduleHandler "github.com/m04kA/SMC-GroomingService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/config"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/integrations/dryrun"
	"github.com/m04kA/SMC-GroomingService/internal/integrations/resendmail"
	"github.com/m04kA/SMC-GroomingService/internal/integrations/twiliosms"
	bookingsService "github.com/m04kA/SMC-GroomingService/internal/service/bookings"
	"github.com/m04kA/SMC-GroomingService/internal/service/notifications"
	scheduleService "github.com/m04kA/SMC-GroomingService/internal/service/schedule"
	"github.com/m04kA/SMC-GroomingService/internal/templates"
	createBookingUC "github.com/m04kA/SMC-GroomingService/internal/usecase/create_booking"
	drainOutboxUC "github.com/m04kA/SMC-GroomingService/internal/usecase/drain_outbox"
	getAvailableSlotsUC "github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-GroomingService/internal/usecase/reschedule_booking"
	scheduleRemindersUC "github.com/m04kA/SMC-GroomingService/internal/usecase/schedule_reminders"
	updateBookingStatusUC "github.com/m04kA/SMC-GroomingService/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-GroomingService/internal/worker"
	"github.com/m04kA/SMC-GroomingService/pkg/logger"
	"github.com/m04kA/SMC-GroomingService/pkg/metrics"
)

const (
	workerJobTimeout = 2 * time.Minute
	adminTokenTTL    = 12 * time.Hour
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML configuration")
	issueToken := flag.String("issue-token", "", "print an admin JWT for the given admin id and exit")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *issueToken != "" {
		now := time.Now()
		token, err := middleware.IssueAdminToken(cfg.Security.AdminJWTSecret, *issueToken, jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		})
		if err != nil {
			fmt.Printf("Failed to issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-GroomingService...")
	log.Info("Configuration loaded from %s", *configPath)

	settings, err := cfg.BusinessSettings()
	if err != nil {
		log.Fatal("Invalid business settings: %v", err)
	}

	// Инициализируем метрики (если включены); nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	var repos *repositories
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		repos, err = openMemory(cfg, settings, log)
	default:
		repos, err = openPostgres(cfg, metricsCollector, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage (driver=%s): %v", cfg.Storage.Driver, err)
	}
	defer repos.close()

	// Шаблоны и провайдеры доставки
	renderer, err := templates.NewRenderer(settings)
	if err != nil {
		log.Fatal("Failed to parse templates: %v", err)
	}
	senders := newSenders(cfg, log)
	planner := notifications.NewPlanner(settings)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		repos.catalog,
		repos.schedule,
		repos.bookings,
		settings,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		repos.catalog,
		repos.customers,
		repos.bookings,
		repos.outbox,
		repos.audit,
		getAvailableSlotsUseCase,
		planner,
		repos.tx,
		metricsCollector,
		settings,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		repos.bookings,
		repos.catalog,
		repos.customers,
		repos.outbox,
		repos.audit,
		planner,
		repos.tx,
		settings,
		log,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		repos.bookings,
		repos.catalog,
		repos.customers,
		repos.outbox,
		repos.audit,
		planner,
		repos.tx,
		log,
	)

	drainOutboxUseCase := drainOutboxUC.NewUseCase(
		repos.outbox,
		renderer,
		senders,
		metricsCollector,
		drainOutboxUC.Settings{
			BatchSize:   cfg.Outbox.BatchSize,
			MaxAttempts: cfg.Outbox.MaxAttempts,
			StaleAfter:  cfg.Outbox.StaleAfter(),
		},
		log,
	)

	scheduleRemindersUseCase := scheduleRemindersUC.NewUseCase(
		repos.bookings,
		repos.catalog,
		repos.customers,
		repos.outbox,
		planner,
		metricsCollector,
		settings,
		scheduleRemindersUC.NewSettings(
			time.Duration(cfg.Reminders.DayFromHours)*time.Hour,
			time.Duration(cfg.Reminders.DayToHours)*time.Hour,
			time.Duration(cfg.Reminders.ShortFromHours)*time.Hour,
			time.Duration(cfg.Reminders.ShortToHours)*time.Hour,
		),
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		repos.bookings,
		repos.catalog,
		repos.customers,
		repos.outbox,
		repos.audit,
		planner,
		repos.tx,
		settings,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		repos.schedule,
		repos.audit,
		repos.tx,
		settings,
		log,
	)

	// Инициализируем handlers
	loc := settings.Location
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, loc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, loc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, loc, log)
	resendNotification := resendNotificationHandler.NewHandler(bookingSvc, log)
	updateCustomerNotes := updateCustomerNotesHandler.NewHandler(bookingSvc, log)
	listFailed := listFailedHandler.NewHandler(bookingSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	scheduleException := scheduleExceptionHandler.NewHandler(scheduleSvc, loc, log)
	blockedTimes := blockedTimesHandler.NewHandler(scheduleSvc, log)
	cronJobs := cronJobsHandler.NewHandler(drainOutboxUseCase, scheduleRemindersUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.HTTPMetrics(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	slotsLimiter := middleware.NewRateLimiter("/api/v1/slots", cfg.RateLimit.SlotsPerMinute, cfg.RateLimit.Burst, metricsCollector, log)
	api.Handle("/slots", slotsLimiter.Middleware(http.HandlerFunc(getAvailableSlots.Handle))).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Security.AdminJWTSecret, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createBooking.HandleManual).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/notifications", resendNotification.Handle).Methods(http.MethodPost)

	// --- Расписание ---
	admin.HandleFunc("/schedule/exceptions/{date}", scheduleException.HandleUpsert).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/exceptions/{date}", scheduleException.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule/{dayOfWeek:[0-6]}", updateSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/blocked-times", blockedTimes.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-times/{id}", blockedTimes.HandleDelete).Methods(http.MethodDelete)

	// --- Клиенты и очередь ---
	admin.HandleFunc("/customers/{customerId}/notes", updateCustomerNotes.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/outbox/failed", listFailed.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (cron secret)
	// ============================================================

	internal := api.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.CronAuth(cfg.Security.CronSecret, log))
	internal.HandleFunc("/outbox/drain", cronJobs.HandleDrain).Methods(http.MethodPost)
	internal.HandleFunc("/reminders", cronJobs.HandleReminders).Methods(http.MethodPost)

	// Фоновые задачи внутри процесса
	var scheduler *worker.Scheduler
	if cfg.Worker.Enabled {
		scheduler = worker.NewScheduler(loc, workerJobTimeout, log)
		jobs := []struct {
			name string
			spec string
			job  worker.Job
		}{
			{"outbox-drain", cfg.Worker.DrainSpec, func(ctx context.Context) error {
				_, err := drainOutboxUseCase.Execute(ctx, &drainOutboxUC.Request{})
				return err
			}},
			{"reminders", cfg.Worker.ReminderSpec, func(ctx context.Context) error {
				_, err := scheduleRemindersUseCase.Execute(ctx)
				return err
			}},
			{"outbox-reclaim", cfg.Worker.ReclaimSpec, func(ctx context.Context) error {
				drainOutboxUseCase.Reclaim(ctx)
				return nil
			}},
		}
		for _, j := range jobs {
			if err := scheduler.Add(j.name, j.spec, j.job); err != nil {
				log.Fatal("Failed to register worker job: %v", err)
			}
		}
		scheduler.Start()
		log.Info("In-process worker started")
	}

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
		log.Info("Worker stopped")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newSenders выбирает провайдера для каждого канала; без учетных данных сообщения только логируются
func newSenders(cfg *config.Config, log *logger.Logger) map[domain.Channel]drainOutboxUC.Sender {
	senders := make(map[domain.Channel]drainOutboxUC.Sender, 2)

	if cfg.SMS.Enabled() {
		senders[domain.ChannelSMS] = twiliosms.NewClient(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber, log)
		log.Info("SMS provider: twilio (from=%s)", cfg.SMS.FromNumber)
	} else {
		senders[domain.ChannelSMS] = dryrun.NewSender(domain.ChannelSMS, log)
		log.Warn("SMS provider credentials missing, using dry-run sender")
	}

	if cfg.Email.Enabled() {
		from := cfg.Email.From
		if cfg.Email.FromName != "" {
			from = fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.From)
		}
		senders[domain.ChannelEmail] = resendmail.NewClient(
			cfg.Email.BaseURL,
			cfg.Email.APIKey,
			from,
			time.Duration(cfg.Email.Timeout)*time.Second,
			log,
		)
		log.Info("Email provider: resend (from=%s)", from)
	} else {
		senders[domain.ChannelEmail] = dryrun.NewSender(domain.ChannelEmail, log)
		log.Warn("Email provider key missing, using dry-run sender")
	}

	return senders
}
