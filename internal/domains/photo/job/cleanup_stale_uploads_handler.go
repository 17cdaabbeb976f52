package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/domains/photo/service"
	"portfolio-backend/internal/shared"
)

// staleUploadAge is how long an unregistered upload may sit under
// uploads/ before the sweep removes it. Generous enough to cover slow
// clients that presigned but never called create.
const staleUploadAge = 24 * time.Hour

// CleanupStaleUploadsHandler removes uploads that never got a metadata
// record, scheduled hourly.
type CleanupStaleUploadsHandler struct {
	derivatives service.DerivativeService
}

func NewCleanupStaleUploadsHandler(derivatives service.DerivativeService) *CleanupStaleUploadsHandler {
	return &CleanupStaleUploadsHandler{derivatives: derivatives}
}

func (h *CleanupStaleUploadsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	removed, err := h.derivatives.SweepStaleUploads(ctx, staleUploadAge)
	if err != nil {
		log.Error().Err(err).Msg("[Worker] stale upload sweep failed")
		return err
	}

	log.Info().
		Str("task", shared.TypeCleanupStaleUploads).
		Int("removed", removed).
		Msg("[Worker] stale upload sweep complete")
	return nil
}
