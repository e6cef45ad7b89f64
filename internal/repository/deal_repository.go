package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// DealRepository manages pipeline deals.
type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	Update(ctx context.Context, deal *domain.Deal) error
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	List(ctx context.Context) ([]domain.Deal, error)
}

type dealRepository struct {
	pool *pgxpool.Pool
}

// NewDealRepository builds the repository.
func NewDealRepository(pool *pgxpool.Pool) DealRepository {
	return &dealRepository{pool: pool}
}

func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	const query = `
        INSERT INTO deals (title, company, value, stage, probability)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		deal.Title,
		deal.Company,
		deal.Value,
		deal.Stage,
		deal.Probability,
	).Scan(&deal.ID, &deal.CreatedAt)
}

func (r *dealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	const query = `
        UPDATE deals SET title=$1, company=$2, value=$3, stage=$4, probability=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		deal.Title,
		deal.Company,
		deal.Value,
		deal.Stage,
		deal.Probability,
		deal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *dealRepository) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	const query = `
        SELECT id, title, company, value, stage, probability, created_at
        FROM deals WHERE id=$1`
	var deal domain.Deal
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&deal.ID,
		&deal.Title,
		&deal.Company,
		&deal.Value,
		&deal.Stage,
		&deal.Probability,
		&deal.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepository) List(ctx context.Context) ([]domain.Deal, error) {
	const query = `
        SELECT id, title, company, value, stage, probability, created_at
        FROM deals ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Deal{}
	for rows.Next() {
		var deal domain.Deal
		if err := rows.Scan(&deal.ID, &deal.Title, &deal.Company, &deal.Value, &deal.Stage, &deal.Probability, &deal.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, deal)
	}
	return result, rows.Err()
}
