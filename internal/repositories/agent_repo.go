package repositories

import (
	"context"

	"leadmart/internal/models"

	"github.com/google/uuid"
)

type AgentRepository interface {
	Create(ctx context.Context, agent *models.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Agent, error)
}

type agentRepo struct {
	db Database
}

func NewAgentRepository(db Database) AgentRepository {
	return &agentRepo{db: db}
}

func (r *agentRepo) Create(ctx context.Context, agent *models.Agent) error {
	query := `
		INSERT INTO agents (id, user_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, agent.ID, agent.UserID)
	return err
}

func (r *agentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	agent := &models.Agent{}
	query := `
		SELECT a.id, a.user_id, u.email, a.created_at, a.updated_at
		FROM agents a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&agent.ID, &agent.UserID, &agent.UserEmail, &agent.CreatedAt, &agent.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return agent, nil
}

func (r *agentRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Agent, error) {
	agent := &models.Agent{}
	query := `
		SELECT a.id, a.user_id, u.email, a.created_at, a.updated_at
		FROM agents a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&agent.ID, &agent.UserID, &agent.UserEmail, &agent.CreatedAt, &agent.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return agent, nil
}
