package repository

import (
	"context"
	"time"

	"portfolio-backend/internal/domains/photo/model"
)

// Repository persists photo metadata.
//
// Update is a compare-and-swap: it only commits when the stored row
// still carries prevUpdatedAt, so two writers racing on the same photo
// cannot silently revert each other's columns. A stale write returns
// model.ErrUpdateConflict.
type Repository interface {
	Create(ctx context.Context, photo *model.Photo) error
	GetByID(ctx context.Context, id string) (*model.Photo, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]*model.Photo, error)
	Update(ctx context.Context, photo *model.Photo, prevUpdatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
