package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/domains/photo/model"
	"portfolio-backend/internal/domains/photo/repository"
	"portfolio-backend/internal/infrastructure/storage"
	pkgcache "portfolio-backend/pkg/cache"
)

const (
	listCacheTTL     = time.Minute
	listCachePattern = "photos:list:*"
)

// candidateExtensions is the order in which uploaded objects are
// probed when only the photo id is known.
var candidateExtensions = []string{"jpg", "jpeg", "png", "webp"}

// TaskEnqueuer schedules background work. Satisfied by queue.Client.
type TaskEnqueuer interface {
	EnqueueGenerateDerivatives(ctx context.Context, objectKey string) error
}

// PhotoService owns the photo lifecycle: presigned uploads, metadata
// registration, status transitions with object relocation, and
// deletion.
type PhotoService interface {
	GenerateUploadURL(ctx context.Context, req model.UploadURLRequest) (*model.UploadURLResponse, error)
	Create(ctx context.Context, req model.CreatePhotoRequest, uploadedBy string) (*model.Photo, error)
	Get(ctx context.Context, id string) (*model.Photo, error)
	List(ctx context.Context, status string, limit int) ([]*model.Photo, error)
	Update(ctx context.Context, id string, req model.UpdatePhotoRequest) (*model.Photo, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
	BulkUpdate(ctx context.Context, req model.BulkUpdateRequest) (*model.BulkUpdateResult, error)
	PublicURL(key string) string
}

type photoService struct {
	repo            repository.Repository
	store           storage.ObjectStorage
	cache           pkgcache.Cache
	tasks           TaskEnqueuer
	presignExpiry   time.Duration
	copyrightHolder string
}

func NewPhotoService(
	repo repository.Repository,
	store storage.ObjectStorage,
	cache pkgcache.Cache,
	tasks TaskEnqueuer,
	cfg *config.Config,
) PhotoService {
	return &photoService{
		repo:            repo,
		store:           store,
		cache:           cache,
		tasks:           tasks,
		presignExpiry:   cfg.Upload.PresignExpiry,
		copyrightHolder: cfg.App.CopyrightHolder,
	}
}

func (s *photoService) GenerateUploadURL(ctx context.Context, req model.UploadURLRequest) (*model.UploadURLResponse, error) {
	photoID := uuid.NewString()
	key := model.UploadKey(photoID, model.ExtensionByMIME[req.FileType])

	url, err := s.store.PresignedPut(ctx, key, req.FileType, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	return &model.UploadURLResponse{
		UploadURL: url,
		PhotoID:   photoID,
		ObjectKey: key,
		ExpiresAt: time.Now().UTC().Add(s.presignExpiry),
	}, nil
}

func (s *photoService) Create(ctx context.Context, req model.CreatePhotoRequest, uploadedBy string) (*model.Photo, error) {
	info, err := s.findUploadedObject(ctx, req.PhotoID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	photo := &model.Photo{
		ID:          req.PhotoID,
		Title:       req.Title,
		Description: req.Description,
		Alt:         req.Alt,
		Copyright:   fmt.Sprintf("(C) %d %s", now.Year(), s.copyrightHolder),
		Gallery:     req.Gallery,
		UploadedBy:  uploadedBy,
		ObjectKey:   info.Key,
		FileSize:    info.Size,
		MimeType:    contentTypeForKey(info),
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, photo); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)

	// Variant generation is best effort. A failed enqueue never undoes
	// a committed record; the stale-upload sweep will not touch it.
	if err := s.tasks.EnqueueGenerateDerivatives(ctx, photo.ObjectKey); err != nil {
		log.Warn().Err(err).Str("photo_id", photo.ID).Msg("failed to enqueue derivatives task")
	}

	return photo, nil
}

func (s *photoService) Get(ctx context.Context, id string) (*model.Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *photoService) List(ctx context.Context, status string, limit int) ([]*model.Photo, error) {
	if status == "" {
		status = model.StatusPublished
	}
	if limit <= 0 {
		limit = model.DefaultListLimit
	}
	if limit > model.MaxListLimit {
		limit = model.MaxListLimit
	}

	cacheKey := fmt.Sprintf("photos:list:%s:%d", status, limit)
	var cached []*model.Photo
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached, nil
	}

	photos, err := s.repo.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, photos, listCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache photo list")
	}
	return photos, nil
}

// maxUpdateRetries bounds how many times Update re-reads and re-applies
// a request after losing a write race to a concurrent updater.
const maxUpdateRetries = 3

func (s *photoService) Update(ctx context.Context, id string, req model.UpdatePhotoRequest) (*model.Photo, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		photo, err := s.updateOnce(ctx, id, req)
		if errors.Is(err, model.ErrUpdateConflict) {
			log.Warn().Str("photoId", id).Int("attempt", attempt+1).Msg("photo update raced a concurrent writer, retrying")
			continue
		}
		return photo, err
	}
	return nil, model.ErrUpdateConflict
}

// updateOnce is a single read-apply-write attempt. The repository write
// is conditional on the updated_at read here, so a concurrent commit
// between the read and the write surfaces as model.ErrUpdateConflict
// instead of silently reverting the other writer's columns.
func (s *photoService) updateOnce(ctx context.Context, id string, req model.UpdatePhotoRequest) (*model.Photo, error) {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prevUpdatedAt := photo.UpdatedAt

	if req.Title != nil {
		photo.Title = *req.Title
	}
	if req.Description != nil {
		photo.Description = *req.Description
	}
	if req.Alt != nil {
		photo.Alt = *req.Alt
	}
	if req.Copyright != nil {
		photo.Copyright = *req.Copyright
	}
	if req.Gallery != nil {
		photo.Gallery = *req.Gallery
	}

	oldKey := photo.ObjectKey
	if req.Status != nil {
		if err := s.applyTransition(ctx, photo, *req.Status); err != nil {
			return nil, err
		}
	}

	// Truncated to Postgres timestamptz precision so the value written
	// here compares equal on the next conditional update.
	photo.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if err := s.repo.Update(ctx, photo, prevUpdatedAt); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)

	// The relocated copy is now the source of truth; losing the old
	// object only leaks storage, so removal failures are logged, not
	// returned.
	if oldKey != photo.ObjectKey {
		if err := s.store.Remove(ctx, oldKey); err != nil {
			log.Warn().Err(err).Str("key", oldKey).Msg("failed to remove relocated source object")
		}
	}

	return photo, nil
}

// applyTransition relocates the object for a status change and updates
// the photo in place. The copy happens before any metadata mutation so
// a storage failure leaves the record untouched.
func (s *photoService) applyTransition(ctx context.Context, photo *model.Photo, newStatus string) error {
	if newStatus == photo.Status {
		return nil
	}

	ext := model.KeyExtension(photo.ObjectKey)
	now := time.Now().UTC()

	var dstKey string
	switch {
	case photo.Status == model.StatusPending && newStatus == model.StatusPublished:
		dstKey = model.OriginalKey(photo.ID, ext)
	case photo.Status == model.StatusPending && newStatus == model.StatusArchived:
		dstKey = model.ArchiveKey(photo.ID, ext)
	case photo.Status == model.StatusPublished && newStatus == model.StatusArchived:
		dstKey = model.ArchiveKey(photo.ID, ext)
	default:
		return fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, photo.Status, newStatus)
	}

	if err := s.store.Copy(ctx, photo.ObjectKey, dstKey); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return model.ErrUploadMissing
		}
		return fmt.Errorf("relocate %s: %w", photo.ObjectKey, err)
	}

	photo.ObjectKey = dstKey
	photo.Status = newStatus
	switch newStatus {
	case model.StatusPublished:
		if photo.PublishedAt == nil {
			photo.PublishedAt = &now
		}
	case model.StatusArchived:
		photo.ArchivedAt = &now
	}
	return nil
}

func (s *photoService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// First delete archives, second delete removes for good.
	if photo.Status != model.StatusArchived {
		archived := model.StatusArchived
		photo, err = s.Update(ctx, id, model.UpdatePhotoRequest{Status: &archived})
		if err != nil {
			return nil, err
		}
		return &model.DeleteResult{
			PhotoID:   photo.ID,
			Status:    model.StatusArchived,
			Timestamp: *photo.ArchivedAt,
		}, nil
	}

	// The archived original must go before the record does; failing
	// here aborts the delete entirely.
	if err := s.store.Remove(ctx, photo.ObjectKey); err != nil {
		return nil, fmt.Errorf("remove archived object: %w", err)
	}

	var cleanupErrors []string
	for _, key := range []string{
		model.ThumbnailKeyFor(photo.ObjectKey),
		model.DisplayKeyFor(photo.ObjectKey),
	} {
		if err := s.store.Remove(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove derived variant")
			cleanupErrors = append(cleanupErrors, key)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)

	return &model.DeleteResult{
		PhotoID:       id,
		Status:        model.StatusDeleted,
		Timestamp:     time.Now().UTC(),
		CleanupErrors: cleanupErrors,
	}, nil
}

func (s *photoService) BulkUpdate(ctx context.Context, req model.BulkUpdateRequest) (*model.BulkUpdateResult, error) {
	result := &model.BulkUpdateResult{
		Updated: make([]string, 0, len(req.PhotoIDs)),
		Failed:  make([]model.BulkFailure, 0),
	}

	for _, id := range req.PhotoIDs {
		if _, err := s.Update(ctx, id, req.Updates); err != nil {
			result.Failed = append(result.Failed, model.BulkFailure{
				PhotoID: id,
				Reason:  bulkFailureReason(err),
			})
			continue
		}
		result.Updated = append(result.Updated, id)
	}
	return result, nil
}

func (s *photoService) PublicURL(key string) string {
	return s.store.PublicURL(key)
}

// findUploadedObject probes the uploads prefix for the object matching
// a photo id, trying each accepted extension.
func (s *photoService) findUploadedObject(ctx context.Context, photoID string) (*storage.ObjectInfo, error) {
	for _, ext := range candidateExtensions {
		info, err := s.store.Stat(ctx, model.UploadKey(photoID, ext))
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("probe upload for %s: %w", photoID, err)
		}
	}
	return nil, model.ErrUploadMissing
}

func (s *photoService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listCachePattern); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate photo list cache")
	}
}

func bulkFailureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrPhotoNotFound):
		return "photo not found"
	case errors.Is(err, model.ErrInvalidTransition):
		return "invalid status transition"
	case errors.Is(err, model.ErrUploadMissing):
		return "object missing in storage"
	case errors.Is(err, model.ErrUpdateConflict):
		return "concurrent modification"
	default:
		return "internal error"
	}
}

func contentTypeForKey(info *storage.ObjectInfo) string {
	if info.ContentType != "" && info.ContentType != "application/octet-stream" {
		return info.ContentType
	}
	switch model.KeyExtension(info.Key) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
