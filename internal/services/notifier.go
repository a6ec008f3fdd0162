package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"fairrank/resume-screener/internal/config"
	"fairrank/resume-screener/internal/models"
)

// Mailer sends a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		password: cfg.Password,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// NotificationService drives the outcome-dependent mail branch: Match gets a
// congratulatory note plus an HR forward, every other band gets a rejection
// with a band-specific reason.
type NotificationService interface {
	SendAcknowledgment(name, email string) error
	NotifyOutcome(category models.Category, name, email string) error
}

type notificationService struct {
	mailer  Mailer
	hrEmail string
	log     *zap.Logger
}

func NewNotificationService(mailer Mailer, hrEmail string, log *zap.Logger) NotificationService {
	return &notificationService{
		mailer:  mailer,
		hrEmail: hrEmail,
		log:     log,
	}
}

// SendAcknowledgment implements NotificationService.
func (n *notificationService) SendAcknowledgment(name, email string) error {
	body := fmt.Sprintf("Dear %s,\n\nThank you for submitting your resume. We will review it and get back to you soon.\n\nBest regards,\nHR Team", name)
	return n.mailer.Send(email, "Resume Submission Received", body)
}

// NotifyOutcome implements NotificationService.
func (n *notificationService) NotifyOutcome(category models.Category, name, email string) error {
	switch category {
	case models.CategoryMatch:
		return n.sendShortlisted(name, email)
	case models.CategoryPartialMatch:
		return n.sendRejection(name, email, "insufficient match with job requirements")
	case models.CategorySkillsGap:
		return n.sendRejection(name, email, "missing key skills")
	default:
		return n.sendRejection(name, email, "no relevant qualifications")
	}
}

func (n *notificationService) sendShortlisted(name, email string) error {
	body := fmt.Sprintf("Dear %s,\n\nCongratulations! Your resume has been shortlisted for the next step. We have forwarded it to our HR team.\n\nBest regards,\nHR Team", name)
	if err := n.mailer.Send(email, "Congratulations! Your Resume Has Been Shortlisted", body); err != nil {
		return err
	}

	if n.hrEmail != "" {
		subject := fmt.Sprintf("Shortlisted Resume: %s", name)
		if err := n.mailer.Send(n.hrEmail, subject, body); err != nil {
			n.log.Warn("failed to forward shortlist to HR",
				zap.String("candidate", name), zap.Error(err))
		}
	}
	return nil
}

func (n *notificationService) sendRejection(name, email, reason string) error {
	body := fmt.Sprintf("Dear %s,\n\nThank you for your application. Unfortunately, your resume did not meet the requirements for this role due to %s. We encourage you to apply for other positions that match your skills.\n\nBest regards,\nHR Team", name, reason)
	return n.mailer.Send(email, "Resume Submission Update", body)
}
