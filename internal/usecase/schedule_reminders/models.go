package schedule_reminders

import (
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Window окно поиска записей относительно текущего момента: старт в [now+From, now+To)
type Window struct {
	Template domain.TemplateID
	From     time.Duration
	To       time.Duration
	Channels []domain.Channel
}

// Settings окна напоминаний
type Settings struct {
	Windows []Window
}

// DefaultSettings напоминание за сутки (SMS и email) и за два часа (только SMS)
func DefaultSettings() Settings {
	return NewSettings(23*time.Hour, 24*time.Hour, time.Hour, 2*time.Hour)
}

// NewSettings собирает окна из границ суточного и короткого напоминаний
func NewSettings(dayFrom, dayTo, shortFrom, shortTo time.Duration) Settings {
	return Settings{Windows: []Window{
		{
			Template: domain.TemplateReminder24h,
			From:     dayFrom,
			To:       dayTo,
			Channels: []domain.Channel{domain.ChannelSMS, domain.ChannelEmail},
		},
		{
			Template: domain.TemplateReminder2h,
			From:     shortFrom,
			To:       shortTo,
			Channels: []domain.Channel{domain.ChannelSMS},
		},
	}}
}

// Response итог прохода
type Response struct {
	Scanned    int // записей попало в окна
	Queued     int // новых строк в очереди
	Duplicates int // уже были поставлены ранее
	Skipped    int // нет получателя или не удалось загрузить данные
}
