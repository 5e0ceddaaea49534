package stats

import (
	"context"
	log "log/slog"
	"time"
)

const resetTimeout = 30 * time.Second

// DailyResetJob is the cron job behind DAILY_RESET_CRON.
type DailyResetJob struct {
	service *Service
}

func NewDailyResetJob(service *Service) *DailyResetJob {
	return &DailyResetJob{service: service}
}

func (j *DailyResetJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
	defer cancel()

	if _, err := j.service.ResetDaily(ctx); err != nil {
		log.Error("daily stats reset failed", "err", err)
		return
	}
	log.Info("daily stats reset")
}
