package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/domains/contact/model"
	"portfolio-backend/internal/infrastructure/email"
	"portfolio-backend/internal/shared/response"
)

type ContactHandler struct {
	email email.EmailService
}

func NewContactHandler(svc email.EmailService) *ContactHandler {
	return &ContactHandler{email: svc}
}

// SubmitContactForm handles POST /contact
func (h *ContactHandler) SubmitContactForm(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	err := h.email.SendContactMessage(c.Request.Context(), email.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			response.ConfigurationError(c, "Contact form is not configured")
			return
		}
		log.Error().Err(err).Msg("contact email delivery failed")
		response.EmailError(c, "Failed to send message")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Your message has been sent",
	})
}
