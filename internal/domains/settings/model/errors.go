package model

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/shared/response"
)

var (
	ErrSettingNotFound       = errors.New("setting not found")
	ErrHeroPhotoNotFound     = errors.New("hero photo not found")
	ErrHeroPhotoNotPublished = errors.New("hero photo is not published")
)

// HandleSettingsError writes the mapped error response, falling back
// to a generic 500.
func HandleSettingsError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrSettingNotFound):
		response.NotFound(c, "Setting not found")
	case errors.Is(err, ErrHeroPhotoNotFound):
		response.ValidationError(c, "heroPhotoId does not reference an existing photo")
	case errors.Is(err, ErrHeroPhotoNotPublished):
		response.ValidationError(c, "heroPhotoId must reference a published photo")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled settings error")
		response.InternalError(c)
	}
	return true
}
