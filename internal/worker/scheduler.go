package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidSpec расписание не разобрано cron парсером
var ErrInvalidSpec = errors.New("worker: invalid cron spec")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job фоновая задача; ctx отменяется при остановке планировщика
type Job func(ctx context.Context) error

// Scheduler запускает фоновые задачи по cron расписанию
// Повторный запуск задачи пропускается, пока предыдущий не завершился
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  Logger
}

// NewScheduler создает планировщик; timeout ограничивает один запуск задачи
func NewScheduler(loc *time.Location, timeout time.Duration, logger Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	adapter := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		logger:  logger,
	}
}

// Add регистрирует задачу
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidSpec, name, spec, err)
	}
	s.logger.Info("Worker job registered: %s (%s)", name, spec)
	return nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop отменяет контекст задач и ждет завершения текущих запусков
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Worker stop timed out, jobs still running")
	}
}

func (s *Scheduler) run(name string, job Job) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	if err := job(ctx); err != nil {
		s.logger.Error("Worker job %s failed after %s: %v", name, time.Since(started), err)
	}
}

// cronLogger адаптер к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет в Info каждый пропущенный запуск
	if msg == "skip" {
		l.logger.Warn("Worker job skipped, previous run still in progress")
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Worker %s: %v %v", msg, err, keysAndValues)
}
