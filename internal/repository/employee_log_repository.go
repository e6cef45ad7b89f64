package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ops-console/internal/domain"
)

// ErrActiveSessionExists is returned when a user already holds an Active log.
var ErrActiveSessionExists = errors.New("active session already exists")

// activeSessionIndex is the partial unique index declared in migrations.
const activeSessionIndex = "employee_logs_one_active_per_user"

// EmployeeLogRepository persists presence sessions.
//
// Create must fail with ErrActiveSessionExists instead of inserting a second
// Active row for the same user, and CloseActive must locate and close the
// newest Active row in one atomic step, returning pgx.ErrNoRows when none exists.
type EmployeeLogRepository interface {
	Create(ctx context.Context, log *domain.EmployeeLog) error
	CloseActive(ctx context.Context, userID string, at time.Time) (*domain.EmployeeLog, error)
	GetActive(ctx context.Context, userID string) (*domain.EmployeeLog, error)
	List(ctx context.Context, filter EmployeeLogFilter) ([]domain.EmployeeLog, error)
}

// EmployeeLogFilter narrows log listings.
type EmployeeLogFilter struct {
	Status *domain.PresenceStatus
}

type employeeLogRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeLogRepository returns a Postgres-backed implementation.
func NewEmployeeLogRepository(pool *pgxpool.Pool) EmployeeLogRepository {
	return &employeeLogRepository{pool: pool}
}

const employeeLogColumns = `id, user_id, employee_name, location, check_in, check_out, status`

func (r *employeeLogRepository) Create(ctx context.Context, log *domain.EmployeeLog) error {
	const query = `
        INSERT INTO employee_logs (user_id, employee_name, location, check_in, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, check_in`
	err := r.pool.QueryRow(ctx, query,
		log.UserID,
		log.EmployeeName,
		log.Location,
		log.CheckIn,
		log.Status,
	).Scan(&log.ID, &log.CheckIn)
	if isUniqueViolation(err, activeSessionIndex) {
		return ErrActiveSessionExists
	}
	return err
}

func (r *employeeLogRepository) CloseActive(ctx context.Context, userID string, at time.Time) (*domain.EmployeeLog, error) {
	// The row lock in the subquery serializes racing checkouts; the loser
	// re-evaluates status='Active', matches nothing and gets ErrNoRows.
	const query = `
        UPDATE employee_logs SET check_out = GREATEST($2::timestamptz, check_in), status = 'Offline'
        WHERE id = (
            SELECT id FROM employee_logs
            WHERE user_id=$1 AND status='Active'
            ORDER BY check_in DESC
            LIMIT 1
            FOR UPDATE
        ) AND status='Active'
        RETURNING ` + employeeLogColumns
	return scanEmployeeLog(r.pool.QueryRow(ctx, query, userID, at))
}

func (r *employeeLogRepository) GetActive(ctx context.Context, userID string) (*domain.EmployeeLog, error) {
	const query = `
        SELECT ` + employeeLogColumns + `
        FROM employee_logs WHERE user_id=$1 AND status='Active'
        ORDER BY check_in DESC LIMIT 1`
	return scanEmployeeLog(r.pool.QueryRow(ctx, query, userID))
}

func (r *employeeLogRepository) List(ctx context.Context, filter EmployeeLogFilter) ([]domain.EmployeeLog, error) {
	query := `SELECT ` + employeeLogColumns + ` FROM employee_logs`
	args := []any{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += " WHERE status=$1"
	}
	query += " ORDER BY check_in DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.EmployeeLog{}
	for rows.Next() {
		log, err := scanEmployeeLog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *log)
	}
	return result, rows.Err()
}

func scanEmployeeLog(row pgx.Row) (*domain.EmployeeLog, error) {
	var log domain.EmployeeLog
	if err := row.Scan(
		&log.ID,
		&log.UserID,
		&log.EmployeeName,
		&log.Location,
		&log.CheckIn,
		&log.CheckOut,
		&log.Status,
	); err != nil {
		return nil, err
	}
	return &log, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
