// Package repotest provides in-memory repositories for service and handler
// tests. They enforce the same constraints as the Postgres schema.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository"
)

// EmployeeLogs is an in-memory repository.EmployeeLogRepository. The mutex
// stands in for the partial unique index and the row lock taken on checkout.
type EmployeeLogs struct {
	mu   sync.Mutex
	rows []domain.EmployeeLog
}

var _ repository.EmployeeLogRepository = (*EmployeeLogs)(nil)

// NewEmployeeLogs returns an empty store.
func NewEmployeeLogs() *EmployeeLogs {
	return &EmployeeLogs{}
}

func (r *EmployeeLogs) Create(_ context.Context, log *domain.EmployeeLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.Status == domain.PresenceActive {
		for _, row := range r.rows {
			if row.UserID == log.UserID && row.Status == domain.PresenceActive {
				return repository.ErrActiveSessionExists
			}
		}
	}
	log.ID = uuid.NewString()
	r.rows = append(r.rows, cloneLog(*log))
	return nil
}

func (r *EmployeeLogs) CloseActive(_ context.Context, userID string, at time.Time) (*domain.EmployeeLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.activeIndex(userID)
	if idx < 0 {
		return nil, pgx.ErrNoRows
	}
	row := &r.rows[idx]
	if at.Before(row.CheckIn) {
		at = row.CheckIn
	}
	row.CheckOut = &at
	row.Status = domain.PresenceOffline
	out := cloneLog(*row)
	return &out, nil
}

func (r *EmployeeLogs) GetActive(_ context.Context, userID string) (*domain.EmployeeLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.activeIndex(userID)
	if idx < 0 {
		return nil, pgx.ErrNoRows
	}
	out := cloneLog(r.rows[idx])
	return &out, nil
}

func (r *EmployeeLogs) List(_ context.Context, filter repository.EmployeeLogFilter) ([]domain.EmployeeLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.EmployeeLog{}
	for _, row := range r.rows {
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		result = append(result, cloneLog(row))
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CheckIn.Equal(result[j].CheckIn) {
			return result[i].ID > result[j].ID
		}
		return result[i].CheckIn.After(result[j].CheckIn)
	})
	return result, nil
}

// Seed inserts a row verbatim, bypassing the active-session check.
func (r *EmployeeLogs) Seed(log domain.EmployeeLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	r.rows = append(r.rows, cloneLog(log))
}

func (r *EmployeeLogs) activeIndex(userID string) int {
	idx := -1
	for i, row := range r.rows {
		if row.UserID != userID || row.Status != domain.PresenceActive {
			continue
		}
		if idx < 0 || row.CheckIn.After(r.rows[idx].CheckIn) {
			idx = i
		}
	}
	return idx
}

func cloneLog(l domain.EmployeeLog) domain.EmployeeLog {
	if l.CheckOut != nil {
		t := *l.CheckOut
		l.CheckOut = &t
	}
	return l
}
