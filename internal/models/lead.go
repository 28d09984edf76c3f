package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective customer contact tracked by the CRM.
type Lead struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	FirstName  string     `json:"first_name" db:"first_name"`
	LastName   string     `json:"last_name" db:"last_name"`
	Age        int        `json:"age" db:"age"`
	AgentID    *uuid.UUID `json:"agent_id" db:"agent_id"`
	AgentEmail string     `json:"agent_email" db:"-"` // joined from users at load time
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

func (l *Lead) String() string {
	return l.FirstName + " " + l.LastName
}
