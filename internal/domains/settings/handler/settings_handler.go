package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domains/settings/model"
	"portfolio-backend/internal/domains/settings/service"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// GetSettings handles GET /settings/:settingId
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	id := c.Param("settingId")
	if !model.IsValidSettingID(id) {
		response.ValidationError(c, "Invalid setting id")
		return
	}

	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		model.HandleSettingsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// UpdateSettings handles PUT /settings/:settingId
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	id := c.Param("settingId")
	if !model.IsValidSettingID(id) {
		response.ValidationError(c, "Invalid setting id")
		return
	}

	var data model.SettingData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := data.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	view, err := h.service.Update(c.Request.Context(), id, data, middleware.Identity(c))
	if err != nil {
		model.HandleSettingsError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}
