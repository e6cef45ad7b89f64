package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// ErrSKUTaken is returned when a catalog item reuses an existing SKU.
var ErrSKUTaken = errors.New("sku already exists")

// InventoryRepository persists catalog items.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository constructs repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        INSERT INTO inventory_items (name, sku, category, price, stock)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		item.Name,
		item.SKU,
		item.Category,
		item.Price,
		item.Stock,
	).Scan(&item.ID, &item.CreatedAt)
	if isUniqueViolation(err, "inventory_items_sku_key") {
		return ErrSKUTaken
	}
	return err
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	const query = `
        UPDATE inventory_items SET name=$1, sku=$2, category=$3, price=$4, stock=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.SKU,
		item.Category,
		item.Price,
		item.Stock,
		item.ID,
	)
	if isUniqueViolation(err, "inventory_items_sku_key") {
		return ErrSKUTaken
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	const query = `
        SELECT id, name, sku, category, price, stock, created_at
        FROM inventory_items WHERE id=$1`
	var item domain.InventoryItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.SKU,
		&item.Category,
		&item.Price,
		&item.Stock,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	const query = `
        SELECT id, name, sku, category, price, stock, created_at
        FROM inventory_items ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.InventoryItem{}
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.SKU, &item.Category, &item.Price, &item.Stock, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
