package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// CustomerRepository persists customer profiles.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	List(ctx context.Context) ([]domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository constructs repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (name, email, phone, company, total_spent, last_purchase, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	notes := customer.Notes
	if notes == nil {
		notes = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Company,
		customer.TotalSpent,
		customer.LastPurchase,
		notes,
	).Scan(&customer.ID, &customer.CreatedAt)
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	const query = `
        SELECT id, name, email, phone, company, total_spent, last_purchase, notes, created_at
        FROM customers ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Company,
			&c.TotalSpent,
			&c.LastPurchase,
			&c.Notes,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
