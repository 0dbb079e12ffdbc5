package cron_jobs

import (
	drainOutbox "github.com/m04kA/SMC-GroomingService/internal/usecase/drain_outbox"
	scheduleReminders "github.com/m04kA/SMC-GroomingService/internal/usecase/schedule_reminders"
)

// DrainResponse итоги прохода по очереди
type DrainResponse struct {
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Dead      int `json:"dead"`
	Skipped   int `json:"skipped"`
	Requeued  int `json:"requeued"`
	Exhausted int `json:"exhausted"`
}

func FromDrainResponse(resp *drainOutbox.Response) *DrainResponse {
	return &DrainResponse{
		Sent:      resp.Sent,
		Failed:    resp.Failed,
		Dead:      resp.Dead,
		Skipped:   resp.Skipped,
		Requeued:  resp.Reclaimed.Requeued,
		Exhausted: resp.Reclaimed.Failed,
	}
}

// RemindersResponse итоги планирования напоминаний
type RemindersResponse struct {
	Queued     int `json:"queued"`
	Scanned    int `json:"scanned"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

func FromRemindersResponse(resp *scheduleReminders.Response) *RemindersResponse {
	return &RemindersResponse{
		Queued:     resp.Queued,
		Scanned:    resp.Scanned,
		Duplicates: resp.Duplicates,
		Skipped:    resp.Skipped,
	}
}
