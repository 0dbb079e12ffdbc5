package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GroomingService/internal/config"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	auditRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/audit"
	bookingRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-GroomingService/internal/infra/storage/memory"
	outboxRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/outbox"
	scheduleRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-GroomingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroomingService/pkg/logger"
	"github.com/m04kA/SMC-GroomingService/pkg/metrics"
	"github.com/m04kA/SMC-GroomingService/pkg/txmanager"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// Полные наборы методов хранилищ; usecase-ы видят только свои подмножества

type bookingStore interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListActiveInRange(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (*domain.Booking, error)
	Reschedule(ctx context.Context, id uuid.UUID, startAt, endAt time.Time) (*domain.Booking, error)
	CreateReschedule(ctx context.Context, rec *domain.BookingReschedule) error
}

type catalogStore interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

type customerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	UpdateContact(ctx context.Context, id uuid.UUID, contact domain.ContactDetails) (*domain.Customer, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (*domain.Customer, error)
}

type scheduleStore interface {
	GetWeekly(ctx context.Context, resourceID uuid.UUID, day time.Weekday) (*domain.WeeklySchedule, error)
	UpsertWeekly(ctx context.Context, w *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	GetException(ctx context.Context, date time.Time) (*domain.ScheduleException, error)
	UpsertException(ctx context.Context, e *domain.ScheduleException) (*domain.ScheduleException, error)
	DeleteException(ctx context.Context, date time.Time) error
	ListBlockedInRange(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*domain.BlockedTime, error)
	CreateBlocked(ctx context.Context, b *domain.BlockedTime) (*domain.BlockedTime, error)
	DeleteBlocked(ctx context.Context, id uuid.UUID) error
}

type outboxStore interface {
	Enqueue(ctx context.Context, entries ...*domain.OutboxEntry) error
	EnqueueUnique(ctx context.Context, e *domain.OutboxEntry) (bool, error)
	ListDue(ctx context.Context, now time.Time, maxAttempts, limit int) ([]*domain.OutboxEntry, error)
	Claim(ctx context.Context, id uuid.UUID, now time.Time) (*domain.OutboxEntry, bool, error)
	MarkSent(ctx context.Context, id uuid.UUID, providerMessageID string, now time.Time) error
	MarkRetry(ctx context.Context, id uuid.UUID, runAt time.Time, lastError string, now time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, now time.Time) error
	ReclaimStale(ctx context.Context, staleBefore time.Time, maxAttempts int, now time.Time) (domain.ReclaimResult, error)
	ListFailed(ctx context.Context, limit int) ([]*domain.OutboxEntry, error)
}

type auditStore interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
}

type transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// repositories хранилища, выбранные storage.driver
type repositories struct {
	bookings  bookingStore
	catalog   catalogStore
	customers customerStore
	schedule  scheduleStore
	outbox    outboxStore
	audit     auditStore
	tx        transactor
	close     func()
}

// openPostgres подключается к БД; запросы оборачиваются метриками, если они включены
func openPostgres(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*repositories, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopStats := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopStats)

	return &repositories{
		bookings:  bookingRepo.NewRepository(wrapped),
		catalog:   catalogRepo.NewRepository(wrapped),
		customers: customerRepo.NewRepository(wrapped),
		schedule:  scheduleRepo.NewRepository(wrapped),
		outbox:    outboxRepo.NewRepository(wrapped),
		audit:     auditRepo.NewRepository(wrapped),
		tx:        txmanager.New(wrapped, log),
		close: func() {
			close(stopStats)
			_ = db.Close()
		},
	}, nil
}

// openMemory создает хранилище в памяти и заполняет каталог и расписание из конфигурации
func openMemory(cfg *config.Config, settings domain.BusinessSettings, log *logger.Logger) (*repositories, error) {
	store := memory.New()

	for _, seed := range cfg.Storage.Services {
		id, err := uuid.Parse(seed.ID)
		if err != nil {
			return nil, fmt.Errorf("storage.services %q: invalid id: %w", seed.Slug, err)
		}
		store.AddService(&domain.Service{
			ID:          id,
			Slug:        seed.Slug,
			Name:        seed.Name,
			DurationMin: seed.DurationMin,
			BufferMin:   seed.BufferMin,
			PriceFrom:   seed.PriceFrom,
			Active:      true,
		})
	}

	ctx := context.Background()
	for _, seed := range cfg.Storage.Weekly {
		weekly, err := weeklyFromSeed(seed, settings.ResourceID)
		if err != nil {
			return nil, err
		}
		if _, err := store.Schedule().UpsertWeekly(ctx, weekly); err != nil {
			return nil, fmt.Errorf("storage.weekly day %d: %w", seed.Weekday, err)
		}
	}

	log.Warn("Using in-memory storage: %d services, %d working days; data is lost on restart",
		len(cfg.Storage.Services), len(cfg.Storage.Weekly))

	return &repositories{
		bookings:  store.Bookings(),
		catalog:   store.Catalog(),
		customers: store.Customers(),
		schedule:  store.Schedule(),
		outbox:    store.Outbox(),
		audit:     store.Audit(),
		tx:        store,
		close:     func() {},
	}, nil
}

func weeklyFromSeed(seed config.WeeklySeed, resourceID uuid.UUID) (*domain.WeeklySchedule, error) {
	start, err := types.NewTimeStringFromString(seed.Start)
	if err != nil {
		return nil, fmt.Errorf("storage.weekly day %d start: %w", seed.Weekday, err)
	}
	end, err := types.NewTimeStringFromString(seed.End)
	if err != nil {
		return nil, fmt.Errorf("storage.weekly day %d end: %w", seed.Weekday, err)
	}

	weekly := &domain.WeeklySchedule{
		ID:         uuid.New(),
		ResourceID: resourceID,
		DayOfWeek:  time.Weekday(seed.Weekday),
		StartTime:  start,
		EndTime:    end,
		Breaks:     []domain.Break{},
	}

	if seed.BreakStart != "" || seed.BreakEnd != "" {
		bs, err := types.NewTimeStringFromString(seed.BreakStart)
		if err != nil {
			return nil, fmt.Errorf("storage.weekly day %d break_start: %w", seed.Weekday, err)
		}
		be, err := types.NewTimeStringFromString(seed.BreakEnd)
		if err != nil {
			return nil, fmt.Errorf("storage.weekly day %d break_end: %w", seed.Weekday, err)
		}
		weekly.Breaks = append(weekly.Breaks, domain.Break{Start: bs, End: be})
	}

	if err := weekly.Validate(); err != nil {
		return nil, fmt.Errorf("storage.weekly day %d: %w", seed.Weekday, err)
	}
	return weekly, nil
}
