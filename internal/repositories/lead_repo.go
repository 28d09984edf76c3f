package repositories

import (
	"context"

	"leadmart/internal/models"

	"github.com/google/uuid"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Lead, error)
	Count(ctx context.Context) (int, error)
}

type leadRepo struct {
	db Database
}

func NewLeadRepository(db Database) LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (id, first_name, last_name, age, agent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, lead.ID, lead.FirstName, lead.LastName, lead.Age, lead.AgentID)
	return err
}

func (r *leadRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead := &models.Lead{}
	query := `
		SELECT l.id, l.first_name, l.last_name, l.age, l.agent_id, COALESCE(u.email, ''), l.created_at, l.updated_at
		FROM leads l
		LEFT JOIN agents a ON a.id = l.agent_id
		LEFT JOIN users u ON u.id = a.user_id
		WHERE l.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&lead.ID, &lead.FirstName, &lead.LastName, &lead.Age, &lead.AgentID, &lead.AgentEmail, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *leadRepo) Update(ctx context.Context, lead *models.Lead) error {
	query := `
		UPDATE leads
		SET first_name = $1, last_name = $2, age = $3, agent_id = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, lead.FirstName, lead.LastName, lead.Age, lead.AgentID, lead.ID)
	return err
}

// Delete removes the lead if it exists. A missing id is not an error so the
// delete handler stays idempotent.
func (r *leadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM leads WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// List returns every lead in insertion order, each with its owning agent's
// email. The list page is unpaginated.
func (r *leadRepo) List(ctx context.Context) ([]*models.Lead, error) {
	query := `
		SELECT l.id, l.first_name, l.last_name, l.age, l.agent_id, COALESCE(u.email, ''), l.created_at, l.updated_at
		FROM leads l
		LEFT JOIN agents a ON a.id = l.agent_id
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY l.created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		lead := &models.Lead{}
		if err := rows.Scan(&lead.ID, &lead.FirstName, &lead.LastName, &lead.Age, &lead.AgentID, &lead.AgentEmail, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *leadRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
