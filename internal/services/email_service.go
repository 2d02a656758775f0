package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"galleria/internal/models"
)

type EmailService interface {
	SendVerificationCode(email string, purpose models.Purpose, code string) error
	SendWelcomeEmail(email, name string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
		dryRun: dryRun,
	}
}

func subjectFor(purpose models.Purpose) string {
	switch purpose {
	case models.PurposeRegistration:
		return "Confirm your Galleria account"
	case models.PurposeLogin2FA:
		return "Your Galleria sign-in code"
	case models.PurposePasswordReset:
		return "Reset your Galleria password"
	case models.PurposeStepUp:
		return "Confirm this action on your Galleria account"
	}
	return "Your Galleria verification code"
}

func (s *emailService) SendVerificationCode(email string, purpose models.Purpose, code string) error {
	if s.dryRun {
		log.Printf("[email][dry-run] to=%s purpose=%s code=%s", email, purpose, code)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", subjectFor(purpose))

	body := fmt.Sprintf(`
		<h3>%s</h3>
		<p>Your verification code is: <strong>%s</strong></p>
		<p>The code expires shortly. If you did not request it, you can ignore this email.</p>
	`, subjectFor(purpose), code)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	if s.dryRun {
		log.Printf("[email][dry-run] welcome to=%s", email)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Galleria!")

	body := fmt.Sprintf(`
		<h2>Welcome to Galleria, %s!</h2>
		<p>Your account is verified and your collection is ready.</p>
		<p>Best regards,<br>The Galleria Team</p>
	`, name)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}
