package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя, чтобы компоненты работали с выключенными метриками
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	BookingsTotal     *prometheus.CounterVec
	OutboxDispatched  *prometheus.CounterVec
	OutboxReclaimed   *prometheus.CounterVec
	RemindersEnqueued *prometheus.CounterVec
	RateLimitRejected *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking attempts by source and outcome",
			ConstLabels: constLabels,
		}, []string{"source", "outcome"}),
		OutboxDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_dispatched_total",
			Help:        "Outbox dispatch outcomes by channel",
			ConstLabels: constLabels,
		}, []string{"channel", "outcome"}),
		OutboxReclaimed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "outbox_reclaimed_total",
			Help:        "Stale processing outbox rows returned to the queue",
			ConstLabels: constLabels,
		}, []string{"result"}),
		RemindersEnqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminders_enqueued_total",
			Help:        "Reminder outbox entries enqueued by template",
			ConstLabels: constLabels,
		}, []string{"template"}),
		RateLimitRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rate_limit_rejected_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: constLabels,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingsTotal,
		m.OutboxDispatched,
		m.OutboxReclaimed,
		m.RemindersEnqueued,
		m.RateLimitRejected,
	)

	return m
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveQuery(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// BookingAttempt фиксирует результат попытки бронирования
func (m *Metrics) BookingAttempt(source, outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(source, outcome).Inc()
}

// OutboxDispatch фиксирует результат отправки уведомления
func (m *Metrics) OutboxDispatch(channel, outcome string) {
	if m == nil {
		return
	}
	m.OutboxDispatched.WithLabelValues(channel, outcome).Inc()
}

// OutboxReclaim фиксирует количество возвращенных в очередь зависших записей
func (m *Metrics) OutboxReclaim(result string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.OutboxReclaimed.WithLabelValues(result).Add(float64(n))
}

// ReminderEnqueued фиксирует поставленное в очередь напоминание
func (m *Metrics) ReminderEnqueued(template string) {
	if m == nil {
		return
	}
	m.RemindersEnqueued.WithLabelValues(template).Inc()
}

// RateLimited фиксирует отклоненный лимитером запрос
func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.RateLimitRejected.WithLabelValues(route).Inc()
}
