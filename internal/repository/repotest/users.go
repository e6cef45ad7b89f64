package repotest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository"
)

// Users is an in-memory repository.UserRepository with unique emails.
type Users struct {
	mu   sync.Mutex
	rows map[string]domain.User
}

var _ repository.UserRepository = (*Users)(nil)

// NewUsers returns an empty store.
func NewUsers() *Users {
	return &Users{rows: make(map[string]domain.User)}
}

func (r *Users) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt, user.UpdatedAt = now, now
	r.rows[user.ID] = *user
	return nil
}

func (r *Users) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, u := range r.rows {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.UpdatedAt = time.Now().UTC()
	r.rows[user.ID] = *user
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}
