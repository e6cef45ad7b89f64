package service

import (
	"context"

	"github.com/spec-kit/ops-console/internal/repository"
)

// AnalyticsService serves dashboard aggregates.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(repo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: repo}
}

// Overview returns total customer revenue and lead and deal counts.
func (s *AnalyticsService) Overview(ctx context.Context) (repository.Overview, error) {
	return s.analytics.Overview(ctx)
}
