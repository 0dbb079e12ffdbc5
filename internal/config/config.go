package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var (
	// ErrLoadConfig ошибка чтения или разбора файла конфигурации
	ErrLoadConfig = errors.New("config: failed to load")
	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	Notify    NotifyConfig    `toml:"notify"`
	Outbox    OutboxConfig    `toml:"outbox"`
	Reminders RemindersConfig `toml:"reminders"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Security  SecurityConfig  `toml:"security"`
	Worker    WorkerConfig    `toml:"worker"`
	SMS       SMSConfig       `toml:"sms"`
	Email     EmailConfig     `toml:"email"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver   string        `toml:"driver"` // postgres | memory
	Services []ServiceSeed `toml:"services"`
	Weekly   []WeeklySeed  `toml:"weekly"`
}

// ServiceSeed услуга каталога для драйвера memory
type ServiceSeed struct {
	ID          string  `toml:"id"`
	Slug        string  `toml:"slug"`
	Name        string  `toml:"name"`
	DurationMin int     `toml:"duration_min"`
	BufferMin   int     `toml:"buffer_min"`
	PriceFrom   float64 `toml:"price_from"`
}

// WeeklySeed рабочие часы дня недели для драйвера memory (0 = воскресенье)
type WeeklySeed struct {
	Weekday    int    `toml:"weekday"`
	Start      string `toml:"start"`
	End        string `toml:"end"`
	BreakStart string `toml:"break_start"`
	BreakEnd   string `toml:"break_end"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BusinessConfig struct {
	Name                string `toml:"name"`
	Phone               string `toml:"phone"`
	PhoneDisplay        string `toml:"phone_display"`
	Address             string `toml:"address"`
	BookingURL          string `toml:"booking_url"`
	Timezone            string `toml:"timezone"`
	ResourceID          string `toml:"resource_id"`
	AutoConfirm         bool   `toml:"auto_confirm"`
	MaxBookingDaysAhead int    `toml:"max_booking_days_ahead"`
}

type NotifyConfig struct {
	BusinessSMS   string `toml:"business_sms"`
	BusinessEmail string `toml:"business_email"`
}

type OutboxConfig struct {
	BatchSize         int `toml:"batch_size"`
	MaxAttempts       int `toml:"max_attempts"`
	StaleAfterMinutes int `toml:"stale_after_minutes"`
}

// StaleAfter порог, после которого запись в processing считается зависшей
func (o OutboxConfig) StaleAfter() time.Duration {
	return time.Duration(o.StaleAfterMinutes) * time.Minute
}

// RemindersConfig окна напоминаний в часах до начала записи
type RemindersConfig struct {
	DayFromHours   int `toml:"day_from_hours"`
	DayToHours     int `toml:"day_to_hours"`
	ShortFromHours int `toml:"short_from_hours"`
	ShortToHours   int `toml:"short_to_hours"`
}

type RateLimitConfig struct {
	SlotsPerMinute int `toml:"slots_per_minute"`
	Burst          int `toml:"burst"`
}

type SecurityConfig struct {
	CronSecret     string `toml:"cron_secret"`
	AdminJWTSecret string `toml:"admin_jwt_secret"`
}

type WorkerConfig struct {
	Enabled      bool   `toml:"enabled"`
	DrainSpec    string `toml:"drain_spec"`
	ReminderSpec string `toml:"reminder_spec"`
	ReclaimSpec  string `toml:"reclaim_spec"`
}

type SMSConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
}

// Enabled true, если заданы все учетные данные Twilio
func (s SMSConfig) Enabled() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.FromNumber != ""
}

type EmailConfig struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	Timeout  int    `toml:"timeout"`
}

// Enabled true, если задан ключ Resend
func (e EmailConfig) Enabled() bool {
	return e.APIKey != ""
}

// Load читает TOML файл, подмешивает .env и переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv подмешивает переменные из файла; отсутствие файла не ошибка, ошибка разбора - ошибка
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "grooming-service"},
		Business: BusinessConfig{
			Timezone:            "Europe/Athens",
			MaxBookingDaysAhead: domain.DefaultMaxBookingDaysAhead,
		},
		Outbox: OutboxConfig{
			BatchSize:         domain.DefaultOutboxBatchSize,
			MaxAttempts:       domain.DefaultOutboxMaxAttempts,
			StaleAfterMinutes: domain.DefaultStaleAfterMinutes,
		},
		Reminders: RemindersConfig{
			DayFromHours:   23,
			DayToHours:     24,
			ShortFromHours: 1,
			ShortToHours:   2,
		},
		RateLimit: RateLimitConfig{SlotsPerMinute: 30, Burst: 30},
		Worker: WorkerConfig{
			DrainSpec:    "@every 1m",
			ReminderSpec: "@every 15m",
			ReclaimSpec:  "@every 5m",
		},
		Email: EmailConfig{BaseURL: "https://api.resend.com", Timeout: 10},
	}
}

// applyEnv секреты и цели уведомлений берутся из окружения поверх файла
func (c *Config) applyEnv() {
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Security.CronSecret, "CRON_SECRET")
	setString(&c.Security.AdminJWTSecret, "ADMIN_JWT_SECRET")
	setString(&c.SMS.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&c.SMS.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&c.SMS.FromNumber, "TWILIO_FROM_NUMBER")
	setString(&c.Email.APIKey, "RESEND_API_KEY")
	setString(&c.Email.From, "RESEND_FROM_EMAIL")
	setString(&c.Email.FromName, "RESEND_FROM_NAME")
	setString(&c.Notify.BusinessSMS, "BUSINESS_NOTIFY_SMS")
	setString(&c.Notify.BusinessEmail, "BUSINESS_NOTIFY_EMAIL")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")

	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("%w: business.timezone %q: %v", ErrInvalidConfig, c.Business.Timezone, err)
	}
	if _, err := uuid.Parse(c.Business.ResourceID); err != nil {
		return fmt.Errorf("%w: business.resource_id must be a uuid: %v", ErrInvalidConfig, err)
	}
	if c.Business.MaxBookingDaysAhead <= 0 {
		return fmt.Errorf("%w: business.max_booking_days_ahead must be positive", ErrInvalidConfig)
	}
	if c.Storage.Driver != StorageDriverPostgres && c.Storage.Driver != StorageDriverMemory {
		return fmt.Errorf("%w: storage.driver must be %q or %q", ErrInvalidConfig, StorageDriverPostgres, StorageDriverMemory)
	}
	if c.Outbox.BatchSize <= 0 || c.Outbox.MaxAttempts <= 0 || c.Outbox.StaleAfterMinutes <= 0 {
		return fmt.Errorf("%w: outbox batch_size, max_attempts and stale_after_minutes must be positive", ErrInvalidConfig)
	}
	r := c.Reminders
	if r.DayFromHours >= r.DayToHours || r.ShortFromHours >= r.ShortToHours || r.ShortFromHours < 0 {
		return fmt.Errorf("%w: reminders windows must be non-empty", ErrInvalidConfig)
	}
	if c.RateLimit.SlotsPerMinute <= 0 {
		return fmt.Errorf("%w: ratelimit.slots_per_minute must be positive", ErrInvalidConfig)
	}
	if c.Security.CronSecret == "" {
		return fmt.Errorf("%w: security.cron_secret is required", ErrInvalidConfig)
	}
	if c.Security.AdminJWTSecret == "" {
		return fmt.Errorf("%w: security.admin_jwt_secret is required", ErrInvalidConfig)
	}
	return nil
}

// BusinessSettings собирает неизменяемые настройки бизнеса для внедрения в компоненты
func (c *Config) BusinessSettings() (domain.BusinessSettings, error) {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return domain.BusinessSettings{}, fmt.Errorf("%w: business.timezone: %v", ErrInvalidConfig, err)
	}
	resourceID, err := uuid.Parse(c.Business.ResourceID)
	if err != nil {
		return domain.BusinessSettings{}, fmt.Errorf("%w: business.resource_id: %v", ErrInvalidConfig, err)
	}

	return domain.BusinessSettings{
		Name:                c.Business.Name,
		Phone:               c.Business.Phone,
		PhoneDisplay:        c.Business.PhoneDisplay,
		Address:             c.Business.Address,
		BookingURL:          c.Business.BookingURL,
		Location:            loc,
		ResourceID:          resourceID,
		AutoConfirm:         c.Business.AutoConfirm,
		MaxBookingDaysAhead: c.Business.MaxBookingDaysAhead,
		NotifySMS:           c.Notify.BusinessSMS,
		NotifyEmail:         c.Notify.BusinessEmail,
	}, nil
}
