package middleware

import "time"

// Metrics интерфейс HTTP метрик
type Metrics interface {
	ObserveHTTP(method, route, status string, d time.Duration)
	RateLimited(route string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
