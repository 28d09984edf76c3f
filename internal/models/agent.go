package models

import (
	"time"

	"github.com/google/uuid"
)

// Agent is the staff identity that owns leads. One agent per user account.
type Agent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	UserEmail string    `json:"user_email" db:"-"` // joined from users at load time
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (a *Agent) String() string {
	return a.UserEmail
}
