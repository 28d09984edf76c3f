package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"leadmart/internal/config"
	"leadmart/internal/models"
	"leadmart/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultMaxRetries    = 3
	dispatchBatchSize    = 50
	leadCreatedSubject   = "A lead has been created"
	leadCreatedBodyStart = "Go to the site to see the new lead"
)

// Mailer delivers a single message. The SMTP implementation is used when a
// mail host is configured; otherwise deliveries are logged.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(_ context.Context, from, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}

type logMailer struct{}

// NewLogMailer returns a mailer that only logs. Used in development when no
// SMTP host is configured.
func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) Send(_ context.Context, from, to, subject, body string) error {
	log.Printf("[EMAIL] From=%s, To=%s, Subject=%s, Body=%s", from, to, subject, body)
	return nil
}

// NotificationService owns the notification outbox: handlers enqueue, the
// background dispatcher delivers.
type NotificationService interface {
	EnqueueLeadCreated(ctx context.Context, lead *models.Lead) error
	DispatchPending(ctx context.Context) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	mailer           Mailer
	from             string
	to               string
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, mailer Mailer, notification config.Notification) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		mailer:           mailer,
		from:             notification.From,
		to:               notification.To,
	}
}

// EnqueueLeadCreated records a pending outbox row for the new lead. Delivery
// happens out of band.
func (s *notificationService) EnqueueLeadCreated(ctx context.Context, lead *models.Lead) error {
	notification := &models.Notification{
		ID:         uuid.New(),
		EventType:  models.EventLeadCreated,
		Recipient:  s.to,
		Subject:    leadCreatedSubject,
		Body:       fmt.Sprintf("%s: %s", leadCreatedBodyStart, lead.String()),
		Status:     models.NotificationStatusPending,
		MaxRetries: defaultMaxRetries,
	}
	return s.notificationRepo.Create(ctx, notification)
}

// DispatchPending delivers a batch of pending notifications. A failed send
// bumps the retry counter; once the counter reaches max_retries the row is
// marked failed and left for inspection.
func (s *notificationService) DispatchPending(ctx context.Context) error {
	pending, err := s.notificationRepo.ListPending(ctx, dispatchBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list pending notifications: %w", err)
	}

	for _, n := range pending {
		if err := s.mailer.Send(ctx, s.from, n.Recipient, n.Subject, n.Body); err != nil {
			final := n.RetryCount+1 >= n.MaxRetries
			log.Printf("WARN: failed to deliver notification %s (attempt %d/%d): %v", n.ID, n.RetryCount+1, n.MaxRetries, err)
			if recordErr := s.notificationRepo.RecordFailure(ctx, n.ID, err.Error(), final); recordErr != nil {
				return recordErr
			}
			continue
		}
		if err := s.notificationRepo.MarkSent(ctx, n.ID); err != nil {
			return err
		}
	}
	return nil
}
