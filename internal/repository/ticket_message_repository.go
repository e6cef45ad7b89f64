package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// TicketMessageRepository manages ticket thread messages.
type TicketMessageRepository interface {
	Create(ctx context.Context, msg *domain.TicketMessage) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketMessage, error)
	// ListByTickets groups the threads of several tickets, oldest message first.
	ListByTickets(ctx context.Context, ticketIDs []string) (map[string][]domain.TicketMessage, error)
}

type ticketMessageRepository struct {
	pool *pgxpool.Pool
}

// NewTicketMessageRepository builds repository.
func NewTicketMessageRepository(pool *pgxpool.Pool) TicketMessageRepository {
	return &ticketMessageRepository{pool: pool}
}

func (r *ticketMessageRepository) Create(ctx context.Context, msg *domain.TicketMessage) error {
	const query = `
        INSERT INTO ticket_messages (ticket_id, sender, body, is_admin)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.TicketID,
		msg.Sender,
		msg.Text,
		msg.IsAdmin,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *ticketMessageRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketMessage, error) {
	grouped, err := r.ListByTickets(ctx, []string{ticketID})
	if err != nil {
		return nil, err
	}
	if msgs, ok := grouped[ticketID]; ok {
		return msgs, nil
	}
	return []domain.TicketMessage{}, nil
}

func (r *ticketMessageRepository) ListByTickets(ctx context.Context, ticketIDs []string) (map[string][]domain.TicketMessage, error) {
	result := make(map[string][]domain.TicketMessage, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return result, nil
	}
	const query = `
        SELECT id, ticket_id, sender, body, is_admin, created_at
        FROM ticket_messages WHERE ticket_id = ANY($1::uuid[]) ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var msg domain.TicketMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.Sender,
			&msg.Text,
			&msg.IsAdmin,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[msg.TicketID] = append(result[msg.TicketID], msg)
	}
	return result, rows.Err()
}
