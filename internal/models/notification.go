package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus tracks an outbox row through its delivery lifecycle.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

const EventLeadCreated = "lead.created"

// Notification is an outbox row. Handlers enqueue rows inside the request
// path; the background dispatcher delivers them and records the outcome, so a
// failed send is visible and retried instead of silently dropped.
type Notification struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	EventType  string             `json:"event_type" db:"event_type"`
	Recipient  string             `json:"recipient" db:"recipient"`
	Subject    string             `json:"subject" db:"subject"`
	Body       string             `json:"body" db:"body"`
	Status     NotificationStatus `json:"status" db:"status"`
	RetryCount int                `json:"retry_count" db:"retry_count"`
	MaxRetries int                `json:"max_retries" db:"max_retries"`
	LastError  *string            `json:"last_error" db:"last_error"`
	SentAt     *time.Time         `json:"sent_at" db:"sent_at"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
}
