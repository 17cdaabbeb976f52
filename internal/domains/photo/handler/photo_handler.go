package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/photo/model"
	"portfolio-backend/internal/domains/photo/service"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
)

type PhotoHandler struct {
	service service.PhotoService
}

func NewPhotoHandler(svc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: svc}
}

// GenerateUploadURL handles POST /photos/upload-url
func (h *PhotoHandler) GenerateUploadURL(c *gin.Context) {
	var req model.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	resp, err := h.service.GenerateUploadURL(c.Request.Context(), req)
	if err != nil {
		model.HandlePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// CreatePhoto handles POST /photos
func (h *PhotoHandler) CreatePhoto(c *gin.Context) {
	var req model.CreatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	photo, err := h.service.Create(c.Request.Context(), req, middleware.Identity(c))
	if err != nil {
		model.HandlePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, model.NewPhotoView(photo, h.service.PublicURL, true))
}

// GetPhoto handles GET /photos/:photoId
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	id := c.Param("photoId")
	if !model.IsValidPhotoID(id) {
		response.ValidationError(c, "photoId must be a valid UUID")
		return
	}

	photo, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		model.HandlePhotoError(c, err)
		return
	}

	authed := middleware.IsAuthenticated(c)
	// Unpublished photos do not exist for anonymous visitors.
	if !authed && photo.Status != model.StatusPublished {
		response.NotFound(c, "Photo not found")
		return
	}
	response.Success(c, http.StatusOK, model.NewPhotoView(photo, h.service.PublicURL, authed))
}

// ListPhotos handles GET /photos
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	status := c.DefaultQuery("status", model.StatusPublished)
	if !model.IsAllowedStatus(status) {
		response.ValidationError(c, "status must be pending, published or archived")
		return
	}

	authed := middleware.IsAuthenticated(c)
	if !authed && status != model.StatusPublished {
		response.Forbidden(c, "Authentication required to list unpublished photos")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.ValidationError(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	photos, err := h.service.List(c.Request.Context(), status, limit)
	if err != nil {
		model.HandlePhotoError(c, err)
		return
	}

	views := model.NewPhotoViews(photos, h.service.PublicURL, authed)
	response.Success(c, http.StatusOK, gin.H{
		"photos": views,
		"count":  len(views),
	})
}

// UpdatePhoto handles PATCH /photos/:photoId
func (h *PhotoHandler) UpdatePhoto(c *gin.Context) {
	id := c.Param("photoId")
	if !model.IsValidPhotoID(id) {
		response.ValidationError(c, "photoId must be a valid UUID")
		return
	}

	var req model.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.IsEmpty() {
		response.ValidationError(c, "No fields to update")
		return
	}

	photo, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		model.HandlePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.NewPhotoView(photo, h.service.PublicURL, true))
}

// DeletePhoto handles DELETE /photos/:photoId
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	id := c.Param("photoId")
	if !model.IsValidPhotoID(id) {
		response.ValidationError(c, "photoId must be a valid UUID")
		return
	}

	result, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		model.HandlePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// BulkUpdatePhotos handles POST /photos/bulk
func (h *PhotoHandler) BulkUpdatePhotos(c *gin.Context) {
	var req model.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		model.HandlePhotoError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Updated %d photos, %d failed", len(result.Updated), len(result.Failed)),
		"updated": result.Updated,
		"failed":  result.Failed,
	})
}
