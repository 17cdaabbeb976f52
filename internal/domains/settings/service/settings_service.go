package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	photomodel "portfolio-backend/internal/domains/photo/model"
	photorepo "portfolio-backend/internal/domains/photo/repository"
	"portfolio-backend/internal/domains/settings/model"
	"portfolio-backend/internal/domains/settings/repository"
	pkgcache "portfolio-backend/pkg/cache"
)

const settingCacheTTL = time.Minute

// SettingsService serves and updates site settings, resolving the
// hero photo reference against the photo store.
type SettingsService interface {
	Get(ctx context.Context, settingID string) (*model.SettingView, error)
	Update(ctx context.Context, settingID string, data model.SettingData, updatedBy string) (*model.SettingView, error)
}

type settingsService struct {
	repo      repository.Repository
	photos    photorepo.Repository
	cache     pkgcache.Cache
	publicURL func(key string) string
}

func NewSettingsService(
	repo repository.Repository,
	photos photorepo.Repository,
	cache pkgcache.Cache,
	publicURL func(key string) string,
) SettingsService {
	return &settingsService{
		repo:      repo,
		photos:    photos,
		cache:     cache,
		publicURL: publicURL,
	}
}

func (s *settingsService) Get(ctx context.Context, settingID string) (*model.SettingView, error) {
	cacheKey := "settings:" + settingID
	var cached model.SettingView
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	setting, err := s.repo.Get(ctx, settingID)
	if errors.Is(err, model.ErrSettingNotFound) {
		setting = model.DefaultSetting(settingID)
		if setting == nil {
			return nil, model.ErrSettingNotFound
		}
	} else if err != nil {
		return nil, err
	}

	view := s.buildView(ctx, setting)
	if err := s.cache.Set(ctx, cacheKey, view, settingCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache setting")
	}
	return view, nil
}

func (s *settingsService) Update(ctx context.Context, settingID string, data model.SettingData, updatedBy string) (*model.SettingView, error) {
	if data.HeroPhotoID != "" {
		photo, err := s.photos.GetByID(ctx, data.HeroPhotoID)
		if err != nil {
			if errors.Is(err, photomodel.ErrPhotoNotFound) {
				return nil, model.ErrHeroPhotoNotFound
			}
			return nil, fmt.Errorf("resolve hero photo: %w", err)
		}
		if photo.Status != photomodel.StatusPublished {
			return nil, model.ErrHeroPhotoNotPublished
		}
	}

	setting := &model.SiteSetting{
		SettingID: settingID,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: updatedBy,
	}
	if err := s.repo.Put(ctx, setting); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, "settings:"+settingID); err != nil {
		log.Warn().Err(err).Str("setting_id", settingID).Msg("failed to invalidate setting cache")
	}
	return s.buildView(ctx, setting), nil
}

// buildView resolves the hero photo to a display URL. A dangling
// reference, for instance after the photo was deleted, simply yields
// no hero image rather than an error.
func (s *settingsService) buildView(ctx context.Context, setting *model.SiteSetting) *model.SettingView {
	view := &model.SettingView{
		SettingID:   setting.SettingID,
		SettingData: setting.Data,
		UpdatedAt:   setting.UpdatedAt,
	}

	if setting.Data.HeroPhotoID == "" {
		return view
	}
	photo, err := s.photos.GetByID(ctx, setting.Data.HeroPhotoID)
	if err != nil {
		if !errors.Is(err, photomodel.ErrPhotoNotFound) {
			log.Warn().Err(err).Str("photo_id", setting.Data.HeroPhotoID).Msg("failed to resolve hero photo")
		}
		return view
	}
	view.HeroImageURL = s.publicURL(photomodel.DisplayKeyFor(photo.ObjectKey))
	return view
}
