package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/shared/response"
)

var (
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrUploadMissing     = errors.New("uploaded file not found in storage")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPhotoExists       = errors.New("photo already registered")
	ErrUpdateConflict    = errors.New("photo was modified concurrently")
)

type errorMapping struct {
	Status    int
	ErrorType string
	Message   string
}

var photoErrorMap = map[error]errorMapping{
	ErrPhotoNotFound: {
		Status:    http.StatusNotFound,
		ErrorType: response.TypeNotFound,
		Message:   "Photo not found",
	},
	ErrUploadMissing: {
		Status:    http.StatusNotFound,
		ErrorType: response.TypeNotFound,
		Message:   "Uploaded file not found in storage",
	},
	ErrInvalidTransition: {
		Status:    http.StatusBadRequest,
		ErrorType: response.TypeValidation,
		Message:   "Invalid status transition",
	},
	ErrPhotoExists: {
		Status:    http.StatusBadRequest,
		ErrorType: response.TypeValidation,
		Message:   "Photo already registered",
	},
	ErrUpdateConflict: {
		Status:    http.StatusConflict,
		ErrorType: response.TypeValidation,
		Message:   "Photo was modified concurrently, please retry",
	},
}

// HandlePhotoError writes the mapped error response and returns true,
// or falls back to a generic 500 for unknown errors.
func HandlePhotoError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	for sentinel, mapping := range photoErrorMap {
		if errors.Is(err, sentinel) {
			response.Fail(c, mapping.Status, mapping.ErrorType, mapping.Message)
			return true
		}
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled photo error")
	response.InternalError(c)
	return true
}
