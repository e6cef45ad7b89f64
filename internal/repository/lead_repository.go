package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, name, company, email, status, score, last_contact, estimated_value, created_at`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (name, company, email, status, score, last_contact, estimated_value)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		lead.Name,
		lead.Company,
		lead.Email,
		lead.Status,
		lead.Score,
		lead.LastContact,
		lead.EstimatedValue,
	).Scan(&lead.ID, &lead.CreatedAt)
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	const query = `
        UPDATE leads SET name=$1, company=$2, email=$3, status=$4, score=$5, last_contact=$6, estimated_value=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		lead.Name,
		lead.Company,
		lead.Email,
		lead.Status,
		lead.Score,
		lead.LastContact,
		lead.EstimatedValue,
		lead.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	return scanLead(r.pool.QueryRow(ctx, query, id))
}

func (r *leadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *lead)
	}
	return result, rows.Err()
}

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var lead domain.Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Company,
		&lead.Email,
		&lead.Status,
		&lead.Score,
		&lead.LastContact,
		&lead.EstimatedValue,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}
