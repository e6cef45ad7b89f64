package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Overview aggregates dashboard headline figures.
type Overview struct {
	Revenue float64
	Leads   int64
	Deals   int64
}

// AnalyticsRepository computes aggregate reads across tables.
type AnalyticsRepository interface {
	Overview(ctx context.Context) (Overview, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository constructs repository.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) Overview(ctx context.Context) (Overview, error) {
	const query = `
        SELECT
            COALESCE((SELECT SUM(total_spent) FROM customers), 0)::float8,
            (SELECT COUNT(*) FROM leads),
            (SELECT COUNT(*) FROM deals)`
	var o Overview
	err := r.pool.QueryRow(ctx, query).Scan(&o.Revenue, &o.Leads, &o.Deals)
	return o, err
}
