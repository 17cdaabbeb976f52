package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/config"
	contacthandler "portfolio-backend/internal/domains/contact/handler"
	photohandler "portfolio-backend/internal/domains/photo/handler"
	photorepo "portfolio-backend/internal/domains/photo/repository"
	photoservice "portfolio-backend/internal/domains/photo/service"
	settingshandler "portfolio-backend/internal/domains/settings/handler"
	settingsrepo "portfolio-backend/internal/domains/settings/repository"
	settingsservice "portfolio-backend/internal/domains/settings/service"
	infracache "portfolio-backend/internal/infrastructure/cache"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/infrastructure/email"
	"portfolio-backend/internal/infrastructure/queue"
	"portfolio-backend/internal/infrastructure/storage"
	pkgcache "portfolio-backend/pkg/cache"
)

// Container wires configuration, infrastructure, repositories,
// services and handlers together.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *database.PostgresDB
	Cache      pkgcache.Cache
	cacheClose func() error
	Storage    storage.ObjectStorage
	Processor  *storage.ImageProcessor
	Queue      *queue.Client
	Email      email.EmailService

	// Repositories
	PhotoRepo    photorepo.Repository
	SettingsRepo settingsrepo.Repository

	// Services
	PhotoService      photoservice.PhotoService
	DerivativeService photoservice.DerivativeService
	SettingsService   settingsservice.SettingsService

	// Handlers
	PhotoHandler    *photohandler.PhotoHandler
	SettingsHandler *settingshandler.SettingsHandler
	ContactHandler  *contacthandler.ContactHandler
}

// NewContainer builds the full dependency graph. Initialization order
// matters: infrastructure, then repositories, then services, then
// handlers.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("[CONTAINER] all components initialized")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	db, err := database.NewPostgresDB(ctx, c.Config.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	c.DB = db

	cache, closeCache, err := infracache.NewRedisCache(ctx, c.Config.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	c.Cache = cache
	c.cacheClose = closeCache

	store, err := storage.NewMinIOStorage(ctx, c.Config.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	c.Storage = store

	c.Processor = storage.NewImageProcessor()
	c.Queue = queue.NewClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	if c.Config.ContactConfigured() {
		c.Email = email.NewSMTPEmailService(c.Config.SMTP)
	} else {
		log.Warn().Msg("[CONTAINER] SMTP not configured, using dev email service")
		c.Email = email.NewDevEmailService()
	}
	return nil
}

func (c *Container) initRepositories() {
	c.PhotoRepo = photorepo.NewPostgresRepository(c.DB.Pool)
	c.SettingsRepo = settingsrepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.PhotoService = photoservice.NewPhotoService(c.PhotoRepo, c.Storage, c.Cache, c.Queue, c.Config)
	c.DerivativeService = photoservice.NewDerivativeService(c.PhotoRepo, c.Storage, c.Processor)
	c.SettingsService = settingsservice.NewSettingsService(c.SettingsRepo, c.PhotoRepo, c.Cache, c.Storage.PublicURL)
}

func (c *Container) initHandlers() {
	c.PhotoHandler = photohandler.NewPhotoHandler(c.PhotoService)
	c.SettingsHandler = settingshandler.NewSettingsHandler(c.SettingsService)
	c.ContactHandler = contacthandler.NewContactHandler(c.Email)
}

// Cleanup releases held connections. Safe to call more than once.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] failed to close queue client")
		}
		c.Queue = nil
	}
	if c.cacheClose != nil {
		if err := c.cacheClose(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] failed to close cache")
		}
		c.cacheClose = nil
	}
	if c.DB != nil {
		c.DB.Close()
		c.DB = nil
	}
	log.Info().Msg("[CONTAINER] cleanup complete")
}
