package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/domains/photo/model"
	"portfolio-backend/internal/domains/photo/repository"
	"portfolio-backend/internal/infrastructure/storage"
)

// derivedCacheControl lets CDNs hold resized variants for a year;
// variant keys never change content after being written.
const derivedCacheControl = "public, max-age=31536000"

// DerivativeService generates resized variants for uploads and sweeps
// uploads that never got a metadata record.
type DerivativeService interface {
	Generate(ctx context.Context, objectKey string) error
	SweepStaleUploads(ctx context.Context, olderThan time.Duration) (int, error)
}

type derivativeService struct {
	repo      repository.Repository
	store     storage.ObjectStorage
	processor *storage.ImageProcessor
}

func NewDerivativeService(
	repo repository.Repository,
	store storage.ObjectStorage,
	processor *storage.ImageProcessor,
) DerivativeService {
	return &derivativeService{
		repo:      repo,
		store:     store,
		processor: processor,
	}
}

// Generate writes the thumbnail and display variants for an uploaded
// object. Keys that are themselves derivatives or not images are
// skipped without error so replayed events stay harmless.
func (s *derivativeService) Generate(ctx context.Context, objectKey string) error {
	if !isDerivableKey(objectKey) {
		log.Debug().Str("key", objectKey).Msg("skipping non-derivable object")
		return nil
	}

	data, err := s.store.Download(ctx, objectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			// The source may have been deleted between enqueue and
			// processing. Nothing to do.
			log.Warn().Str("key", objectKey).Msg("source object gone, skipping derivatives")
			return nil
		}
		return fmt.Errorf("download source: %w", err)
	}

	variants := []struct {
		key   string
		width int
	}{
		{model.ThumbnailKeyFor(objectKey), storage.ThumbnailWidth},
		{model.DisplayKeyFor(objectKey), storage.DisplayWidth},
	}

	for _, v := range variants {
		resized, contentType, err := s.processor.Resize(data, v.width)
		if err != nil {
			return fmt.Errorf("resize %s to %d: %w", objectKey, v.width, err)
		}
		if err := s.store.Upload(ctx, v.key, resized, contentType, derivedCacheControl); err != nil {
			return fmt.Errorf("upload variant %s: %w", v.key, err)
		}
	}

	log.Info().Str("key", objectKey).Msg("derivatives generated")
	return nil
}

// SweepStaleUploads removes objects under uploads/ that are older than
// the cutoff and have no photo record. Returns how many were removed.
func (s *derivativeService) SweepStaleUploads(ctx context.Context, olderThan time.Duration) (int, error) {
	objects, err := s.store.List(ctx, model.PrefixUploads)
	if err != nil {
		return 0, fmt.Errorf("list uploads: %w", err)
	}

	cutoff := time.Now().UTC().Add(-olderThan)
	removed := 0

	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}

		photoID := photoIDFromKey(obj.Key)
		if photoID == "" {
			continue
		}

		_, err := s.repo.GetByID(ctx, photoID)
		if err == nil {
			// Record exists, the upload is registered. A pending photo
			// legitimately lives under uploads/ indefinitely.
			continue
		}
		if !errors.Is(err, model.ErrPhotoNotFound) {
			return removed, fmt.Errorf("check record for %s: %w", obj.Key, err)
		}

		if err := s.store.Remove(ctx, obj.Key); err != nil {
			log.Warn().Err(err).Str("key", obj.Key).Msg("failed to remove stale upload")
			continue
		}
		log.Info().Str("key", obj.Key).Msg("removed stale upload")
		removed++
	}
	return removed, nil
}

var derivableExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "webp": true, "gif": true,
}

func isDerivableKey(key string) bool {
	if strings.HasPrefix(key, model.PrefixThumbnails) || strings.HasPrefix(key, model.PrefixDisplay) {
		return false
	}
	return derivableExtensions[model.KeyExtension(key)]
}

func photoIDFromKey(key string) string {
	filename := model.KeyFilename(key)
	id := strings.TrimSuffix(filename, "."+model.KeyExtension(key))
	if !model.IsValidPhotoID(id) {
		return ""
	}
	return id
}
