package repositories

import (
	"context"

	"leadmart/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListPending(ctx context.Context, limit int) ([]*models.Notification, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	RecordFailure(ctx context.Context, id uuid.UUID, lastError string, final bool) error
}

type notificationRepo struct {
	db Database
}

func NewNotificationRepository(db Database) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, event_type, recipient, subject, body, status, retry_count, max_retries, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, notification.ID, notification.EventType, notification.Recipient,
		notification.Subject, notification.Body, notification.Status, notification.RetryCount, notification.MaxRetries)
	return err
}

// ListPending returns the oldest undelivered rows first so retries do not
// starve newer notifications.
func (r *notificationRepo) ListPending(ctx context.Context, limit int) ([]*models.Notification, error) {
	query := `
		SELECT id, event_type, recipient, subject, body, status, retry_count, max_retries, last_error, sent_at, created_at
		FROM notifications
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, models.NotificationStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.EventType, &n.Recipient, &n.Subject, &n.Body, &n.Status,
			&n.RetryCount, &n.MaxRetries, &n.LastError, &n.SentAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET status = $1, sent_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, models.NotificationStatusSent, id)
	return err
}

// RecordFailure bumps the retry counter and stores the transport error. When
// final is true the row leaves the pending pool for good.
func (r *notificationRepo) RecordFailure(ctx context.Context, id uuid.UUID, lastError string, final bool) error {
	status := models.NotificationStatusPending
	if final {
		status = models.NotificationStatusFailed
	}
	query := `
		UPDATE notifications
		SET status = $1, retry_count = retry_count + 1, last_error = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, lastError, id)
	return err
}
