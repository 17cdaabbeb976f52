package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	photomodel "portfolio-backend/internal/domains/photo/model"
	"portfolio-backend/internal/domains/settings/model"
)

const heroPhotoID = "6f1b4a2c-9d3e-4f5a-8b6c-7d8e9f0a1b2c"

type fakeSettingsRepo struct {
	settings map[string]*model.SiteSetting
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[string]*model.SiteSetting{}}
}

func (r *fakeSettingsRepo) Get(_ context.Context, id string) (*model.SiteSetting, error) {
	s, ok := r.settings[id]
	if !ok {
		return nil, model.ErrSettingNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSettingsRepo) Put(_ context.Context, s *model.SiteSetting) error {
	cp := *s
	r.settings[s.SettingID] = &cp
	return nil
}

type fakePhotoRepo struct {
	photos map[string]*photomodel.Photo
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[string]*photomodel.Photo{}}
}

func (r *fakePhotoRepo) Create(_ context.Context, p *photomodel.Photo) error {
	r.photos[p.ID] = p
	return nil
}

func (r *fakePhotoRepo) GetByID(_ context.Context, id string) (*photomodel.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, photomodel.ErrPhotoNotFound
	}
	return p, nil
}

func (r *fakePhotoRepo) ListByStatus(context.Context, string, int) ([]*photomodel.Photo, error) {
	return nil, nil
}

func (r *fakePhotoRepo) Update(_ context.Context, p *photomodel.Photo, _ time.Time) error {
	r.photos[p.ID] = p
	return nil
}

func (r *fakePhotoRepo) Delete(_ context.Context, id string) error {
	delete(r.photos, id)
	return nil
}

type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }

func publicURL(key string) string { return "https://cdn.test/" + key }

func newSettingsFixture() (*fakeSettingsRepo, *fakePhotoRepo, SettingsService) {
	repo := newFakeSettingsRepo()
	photos := newFakePhotoRepo()
	svc := NewSettingsService(repo, photos, newMemCache(), publicURL)
	return repo, photos, svc
}

func TestGetReturnsDefaultsForHero(t *testing.T) {
	_, _, svc := newSettingsFixture()

	view, err := svc.Get(context.Background(), model.SettingHero)
	require.NoError(t, err)
	assert.Equal(t, "Photography Portfolio", view.Title)
	assert.Equal(t, 3, view.GalleryColumns)
	assert.Empty(t, view.HeroImageURL)
}

func TestGetReturnsDefaultsForAbout(t *testing.T) {
	_, _, svc := newSettingsFixture()

	view, err := svc.Get(context.Background(), model.SettingAbout)
	require.NoError(t, err)
	assert.Len(t, view.Sections, 2)
}

func TestGetUnknownSettingNotFound(t *testing.T) {
	_, _, svc := newSettingsFixture()

	_, err := svc.Get(context.Background(), "navigation")
	assert.ErrorIs(t, err, model.ErrSettingNotFound)
}

func TestUpdateResolvesHeroImageURL(t *testing.T) {
	_, photos, svc := newSettingsFixture()
	photos.photos[heroPhotoID] = &photomodel.Photo{
		ID:        heroPhotoID,
		Status:    photomodel.StatusPublished,
		ObjectKey: photomodel.OriginalKey(heroPhotoID, "jpg"),
	}

	view, err := svc.Update(context.Background(), model.SettingHero, model.SettingData{
		Title:       "My Portfolio",
		HeroPhotoID: heroPhotoID,
	}, "cindy@example.com")
	require.NoError(t, err)

	expected := publicURL(photomodel.DisplayKeyFor(photomodel.OriginalKey(heroPhotoID, "jpg")))
	assert.Equal(t, expected, view.HeroImageURL)
}

func TestUpdateRejectsMissingHeroPhoto(t *testing.T) {
	_, _, svc := newSettingsFixture()

	_, err := svc.Update(context.Background(), model.SettingHero, model.SettingData{
		HeroPhotoID: heroPhotoID,
	}, "cindy@example.com")
	assert.ErrorIs(t, err, model.ErrHeroPhotoNotFound)
}

func TestUpdateRejectsUnpublishedHeroPhoto(t *testing.T) {
	_, photos, svc := newSettingsFixture()
	photos.photos[heroPhotoID] = &photomodel.Photo{
		ID:        heroPhotoID,
		Status:    photomodel.StatusPending,
		ObjectKey: photomodel.UploadKey(heroPhotoID, "jpg"),
	}

	_, err := svc.Update(context.Background(), model.SettingHero, model.SettingData{
		HeroPhotoID: heroPhotoID,
	}, "cindy@example.com")
	assert.ErrorIs(t, err, model.ErrHeroPhotoNotPublished)
}

func TestGetToleratesDanglingHeroReference(t *testing.T) {
	repo, _, svc := newSettingsFixture()
	require.NoError(t, repo.Put(context.Background(), &model.SiteSetting{
		SettingID: model.SettingHero,
		Data:      model.SettingData{Title: "T", HeroPhotoID: heroPhotoID},
		UpdatedAt: time.Now().UTC(),
	}))

	// photo was deleted after being set as hero
	view, err := svc.Get(context.Background(), model.SettingHero)
	require.NoError(t, err)
	assert.Empty(t, view.HeroImageURL)
	assert.Equal(t, heroPhotoID, view.HeroPhotoID)
}

func TestUpdateInvalidatesCachedView(t *testing.T) {
	_, _, svc := newSettingsFixture()

	first, err := svc.Get(context.Background(), model.SettingHero)
	require.NoError(t, err)
	assert.Equal(t, "Photography Portfolio", first.Title)

	_, err = svc.Update(context.Background(), model.SettingHero, model.SettingData{
		Title: "New Title",
	}, "cindy@example.com")
	require.NoError(t, err)

	second, err := svc.Get(context.Background(), model.SettingHero)
	require.NoError(t, err)
	assert.Equal(t, "New Title", second.Title)
}
