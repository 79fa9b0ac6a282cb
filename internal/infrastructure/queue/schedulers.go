package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"book-inventory/internal/shared"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.WarnLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterInventoryReport schedules the inventory workbook export.
// spec is a cron expression, daily at 01:00 UTC by default.
func (s *Scheduler) RegisterInventoryReport(spec string) error {
	task := asynq.NewTask(shared.TypeInventoryReport, nil)

	entryID, err := s.scheduler.Register(
		spec,
		task,
		asynq.Queue(shared.QueueReport),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", shared.TypeInventoryReport, err)
	}

	log.Info().Str("entry_id", entryID).Str("cron", spec).Msg("[Scheduler] Registered inventory report")
	return nil
}

// Start runs the scheduler in the background; call Shutdown to stop it
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
