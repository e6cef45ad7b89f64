package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/observability"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// Messages returned by presence operations.
const (
	MessageNoActiveSession     = "No active session."
	MessageActiveSessionExists = "Already checked in. Check out before starting a new session."
)

// PresenceService tracks employee check-in/check-out sessions.
//
// The one-Active-log-per-user rule is enforced by the repository in a single
// atomic statement for each transition; the service never reads before writing.
type PresenceService struct {
	logs    repository.EmployeeLogRepository
	metrics *observability.Metrics
	now     func() time.Time
	publisher
}

// PresenceDependencies bundles collaborators for PresenceService.
type PresenceDependencies struct {
	LogRepo    repository.EmployeeLogRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewPresenceService constructs the service.
func NewPresenceService(deps PresenceDependencies) *PresenceService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &PresenceService{
		logs:      deps.LogRepo,
		metrics:   deps.Metrics,
		now:       now,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// CheckIn opens a new Active session for identity.
func (s *PresenceService) CheckIn(ctx context.Context, identity domain.Identity, location string) (*domain.EmployeeLog, error) {
	if identity.ID == "" {
		return nil, apperrors.NewUnauthorized("Session expired or unauthorized.")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = domain.DefaultLocation
	}

	log := &domain.EmployeeLog{
		UserID:       identity.ID,
		EmployeeName: identity.Name,
		Location:     location,
		CheckIn:      s.now().UTC(),
		Status:       domain.PresenceActive,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		if errors.Is(err, repository.ErrActiveSessionExists) {
			s.metrics.RecordPresence("checkin", "conflict")
			return nil, apperrors.NewConflict(MessageActiveSessionExists, nil)
		}
		s.metrics.RecordPresence("checkin", "error")
		return nil, err
	}

	s.metrics.RecordPresence("checkin", "ok")
	s.publish(ctx, events.EventPresenceCheckedIn, identity, log.ID, events.PresencePayload{Location: log.Location})
	return log, nil
}

// CheckOut closes identity's most recent Active session.
func (s *PresenceService) CheckOut(ctx context.Context, identity domain.Identity) (*domain.EmployeeLog, error) {
	if identity.ID == "" {
		return nil, apperrors.NewUnauthorized("Session expired or unauthorized.")
	}

	log, err := s.logs.CloseActive(ctx, identity.ID, s.now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.metrics.RecordPresence("checkout", "not_found")
			return nil, apperrors.NewNotFoundMessage(MessageNoActiveSession, nil)
		}
		s.metrics.RecordPresence("checkout", "error")
		return nil, err
	}

	s.metrics.RecordPresence("checkout", "ok")
	s.publish(ctx, events.EventPresenceCheckedOut, identity, log.ID, events.PresencePayload{Location: log.Location})
	return log, nil
}

// List returns all logs newest check-in first. An empty status means no filter.
func (s *PresenceService) List(ctx context.Context, status string) ([]domain.EmployeeLog, error) {
	filter := repository.EmployeeLogFilter{}
	if status != "" {
		st := domain.PresenceStatus(status)
		if !st.Valid() {
			return nil, apperrors.NewValidationError("status must be one of: Active Offline",
				map[string]any{"fields": map[string]any{"status": status}})
		}
		filter.Status = &st
	}
	return s.logs.List(ctx, filter)
}

// Current returns identity's Active session and its elapsed time.
func (s *PresenceService) Current(ctx context.Context, identity domain.Identity) (*domain.EmployeeLog, time.Duration, error) {
	log, err := s.logs.GetActive(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.NewNotFoundMessage(MessageNoActiveSession, nil)
		}
		return nil, 0, err
	}
	return log, log.Elapsed(s.now()), nil
}
