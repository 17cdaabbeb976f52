package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/shared"
)

type workerServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func newWorkerServer(cfg *config.Config) *workerServer {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueHigh:    20,
				shared.QueueDefault: 10,
				shared.QueueLow:     5,
			},
		},
	)
	return &workerServer{
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

func (s *workerServer) run() error {
	log.Info().Msg("[Worker] processing tasks")
	return s.server.Run(s.mux)
}

func (s *workerServer) shutdown() {
	s.server.Shutdown()
}
