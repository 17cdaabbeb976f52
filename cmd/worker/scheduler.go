package main

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/shared"
)

type scheduler struct {
	scheduler *asynq.Scheduler
}

func newScheduler(cfg *config.Config) *scheduler {
	return &scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{
				Addr:     cfg.Redis.Host,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			},
			&asynq.SchedulerOpts{Location: time.UTC},
		),
	}
}

func (s *scheduler) registerTasks() error {
	entryID, err := s.scheduler.Register(
		"@every 1h",
		asynq.NewTask(shared.TypeCleanupStaleUploads, nil),
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		return err
	}

	log.Info().
		Str("entry_id", entryID).
		Str("task", shared.TypeCleanupStaleUploads).
		Msg("[Scheduler] task registered")
	return nil
}

func (s *scheduler) run() error {
	log.Info().Msg("[Scheduler] started")
	return s.scheduler.Run()
}

func (s *scheduler) shutdown() {
	s.scheduler.Shutdown()
}
