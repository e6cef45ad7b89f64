package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
)

// DealService manages the sales pipeline.
type DealService struct {
	deals repository.DealRepository
	publisher
}

// DealDependencies bundles collaborators for DealService.
type DealDependencies struct {
	DealRepo   repository.DealRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// DealInput describes a new deal.
type DealInput struct {
	Title       string
	Company     string
	Value       float64
	Stage       domain.DealStage
	Probability int
}

// DealPatch carries partial deal updates.
type DealPatch struct {
	Title       *string
	Company     *string
	Value       *float64
	Stage       *domain.DealStage
	Probability *int
}

// NewDealService constructs the service.
func NewDealService(deps DealDependencies) *DealService {
	return &DealService{
		deals:     deps.DealRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns deals newest first.
func (s *DealService) List(ctx context.Context) ([]domain.Deal, error) {
	return s.deals.List(ctx)
}

// Create stores a new deal.
func (s *DealService) Create(ctx context.Context, actor domain.Identity, input DealInput) (*domain.Deal, error) {
	deal := &domain.Deal{
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Value:       input.Value,
		Stage:       input.Stage,
		Probability: input.Probability,
	}
	if deal.Stage == "" {
		deal.Stage = domain.DealStageProspect
	}
	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventDealCreated, actor, deal.ID, events.DealPayload{Title: deal.Title, Value: deal.Value, NewStage: deal.Stage})
	return deal, nil
}

// Update applies patch to the deal with id.
func (s *DealService) Update(ctx context.Context, actor domain.Identity, id string, patch DealPatch) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "deal")
	}
	oldStage := deal.Stage
	if patch.Title != nil {
		deal.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Company != nil {
		deal.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Value != nil {
		deal.Value = *patch.Value
	}
	if patch.Stage != nil {
		deal.Stage = *patch.Stage
	}
	if patch.Probability != nil {
		deal.Probability = *patch.Probability
	}
	if err := s.deals.Update(ctx, deal); err != nil {
		return nil, notFound(err, "deal")
	}
	s.publish(ctx, events.EventDealUpdated, actor, deal.ID, events.DealPayload{
		Title:    deal.Title,
		Value:    deal.Value,
		OldStage: oldStage,
		NewStage: deal.Stage,
	})
	return deal, nil
}
