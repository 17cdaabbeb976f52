package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/domains/photo/service"
	"portfolio-backend/internal/shared"
)

// GenerateDerivativesHandler resizes uploaded photos into thumbnail
// and display variants.
type GenerateDerivativesHandler struct {
	derivatives service.DerivativeService
}

func NewGenerateDerivativesHandler(derivatives service.DerivativeService) *GenerateDerivativesHandler {
	return &GenerateDerivativesHandler{derivatives: derivatives}
}

func (h *GenerateDerivativesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.GenerateDerivativesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("task", shared.TypeGenerateDerivatives).
		Str("object_key", payload.ObjectKey).
		Msg("[Worker] generating derivatives")

	if err := h.derivatives.Generate(ctx, payload.ObjectKey); err != nil {
		log.Error().
			Err(err).
			Str("object_key", payload.ObjectKey).
			Msg("[Worker] derivative generation failed")
		return err
	}
	return nil
}
