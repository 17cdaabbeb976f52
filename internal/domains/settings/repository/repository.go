package repository

import (
	"context"

	"portfolio-backend/internal/domains/settings/model"
)

// Repository persists site settings.
type Repository interface {
	Get(ctx context.Context, settingID string) (*model.SiteSetting, error)
	Put(ctx context.Context, setting *model.SiteSetting) error
}
