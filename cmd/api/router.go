package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/pkg/container"
)

// SetupRouter registers global middleware and all API routes.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(c.Config.CORS))

	v1 := router.Group("/api/v1")
	v1.GET("/health", healthCheckHandler(c))

	setupPhotoRoutes(v1, c)
	setupSettingsRoutes(v1, c)
	setupContactRoutes(v1, c)

	return router
}

// ===== Photo routes =====
func setupPhotoRoutes(v1 *gin.RouterGroup, c *container.Container) {
	photos := v1.Group("/photos")
	{
		photos.GET("", middleware.OptionalAuth(), c.PhotoHandler.ListPhotos)
		photos.GET("/:photoId", middleware.OptionalAuth(), c.PhotoHandler.GetPhoto)
		photos.POST("", middleware.RequireAuth(), c.PhotoHandler.CreatePhoto)
		photos.POST("/upload-url", middleware.RequireAuth(), c.PhotoHandler.GenerateUploadURL)
		photos.PATCH("/:photoId", middleware.RequireAuth(), c.PhotoHandler.UpdatePhoto)
		photos.DELETE("/:photoId", middleware.RequireAuth(), c.PhotoHandler.DeletePhoto)
		photos.POST("/bulk", middleware.RequireAuth(), c.PhotoHandler.BulkUpdatePhotos)
	}
}

// ===== Settings routes =====
func setupSettingsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	settings := v1.Group("/settings")
	{
		settings.GET("/:settingId", c.SettingsHandler.GetSettings)
		settings.PUT("/:settingId", middleware.RequireAuth(), c.SettingsHandler.UpdateSettings)
	}
}

// ===== Contact routes =====
func setupContactRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/contact", c.ContactHandler.SubmitContactForm)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{
			"database": "ok",
			"cache":    "ok",
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
