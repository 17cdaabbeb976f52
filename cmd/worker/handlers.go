package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/domains/photo/job"
	"portfolio-backend/internal/shared"
	"portfolio-backend/pkg/container"
)

// registerHandlers binds every task type to its handler.
func registerHandlers(mux *asynq.ServeMux, c *container.Container) {
	mux.Handle(shared.TypeGenerateDerivatives,
		job.NewGenerateDerivativesHandler(c.DerivativeService))
	mux.Handle(shared.TypeCleanupStaleUploads,
		job.NewCleanupStaleUploadsHandler(c.DerivativeService))

	log.Info().
		Strs("tasks", []string{shared.TypeGenerateDerivatives, shared.TypeCleanupStaleUploads}).
		Msg("[Worker] handlers registered")
}
