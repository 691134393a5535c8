package service

import (
	"fmt"

	"greencampus/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail for the back office.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendPasswordResetEmail mails a reset link to an admin account.
func (s *EmailService) SendPasswordResetEmail(toEmail, username, resetLink string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set email.enabled=true")
	}

	subject := "[GreenCampus] Password reset"
	body := s.resetEmailBody(username, resetLink)

	return s.send(toEmail, subject, body)
}

func (s *EmailService) resetEmailBody(username, resetLink string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto;">
    <h2 style="color: #16a34a;">GreenCampus Admin</h2>
    <p>Hello <strong>%s</strong>,</p>
    <p>We received a request to reset your password. Click the button below to choose a new one:</p>
    <p><a href="%s" style="display: inline-block; background: #16a34a; color: #fff; text-decoration: none; padding: 12px 32px; border-radius: 6px;">Reset password</a></p>
    <p style="color: #856404;">This link is valid for 30 minutes. If you did not request a reset, ignore this mail.</p>
    <p>If the button does not work, copy this link into your browser:<br>
    <span style="word-break: break-all; color: #16a34a;">%s</span></p>
  </div>
</body>
</html>`, username, resetLink, resetLink)
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
