package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/config"
)

// ErrNotConfigured is returned when SMTP settings are incomplete.
var ErrNotConfigured = errors.New("email is not configured")

// ContactMessage is a visitor submission from the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// EmailService delivers contact-form submissions to the site owner.
type EmailService interface {
	SendContactMessage(ctx context.Context, msg ContactMessage) error
}

type smtpEmailService struct {
	addr       string
	from       string
	recipients []string
}

func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return &smtpEmailService{
		addr:       cfg.Host + ":" + cfg.Port,
		from:       cfg.From,
		recipients: cfg.Recipients,
	}
}

func (s *smtpEmailService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	if s.addr == ":587" || s.addr == ":" || s.from == "" || len(s.recipients) == 0 {
		return ErrNotConfigured
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Subject)
	body := fmt.Sprintf(
		"You have received a new message through your portfolio website.\r\n\r\n"+
			"Name: %s\r\nEmail: %s\r\nSubject: %s\r\n\r\n%s\r\n\r\n"+
			"Received at %s\r\n",
		msg.Name, msg.Email, msg.Subject, msg.Message,
		time.Now().UTC().Format(time.RFC3339),
	)

	headers := []string{
		"From: " + s.from,
		"To: " + strings.Join(s.recipients, ", "),
		"Reply-To: " + msg.Email,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	payload := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)

	if err := smtp.SendMail(s.addr, nil, s.from, s.recipients, payload); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}

	log.Info().Str("from", msg.Email).Msg("[EMAIL] contact message delivered")
	return nil
}

// devEmailService logs messages instead of sending them. Used when no
// SMTP host is configured in development.
type devEmailService struct{}

func NewDevEmailService() EmailService {
	return &devEmailService{}
}

func (s *devEmailService) SendContactMessage(_ context.Context, msg ContactMessage) error {
	log.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", msg.Subject).
		Msg("[EMAIL] contact message (dev mode, not sent)")
	return nil
}
