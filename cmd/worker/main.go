package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/config"
	"portfolio-backend/pkg/container"
	"portfolio-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.Init(cfg.App.Env)

	c, err := container.NewContainer(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("[Worker] failed to initialize container")
	}
	defer c.Cleanup()

	srv := newWorkerServer(cfg)
	registerHandlers(srv.mux, c)

	sched := newScheduler(cfg)
	if err := sched.registerTasks(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] failed to register tasks")
	}

	go func() {
		if err := sched.run(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] stopped with error")
		}
	}()

	go func() {
		if err := srv.run(); err != nil {
			log.Fatal().Err(err).Msg("[Worker] stopped with error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("[Worker] shutting down")
	sched.shutdown()
	srv.shutdown()
	log.Info().Msg("[Worker] stopped")
}
