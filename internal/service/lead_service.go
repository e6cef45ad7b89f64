package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// LeadService manages the lead list.
type LeadService struct {
	leads repository.LeadRepository
	publisher
}

// LeadDependencies bundles collaborators for LeadService.
type LeadDependencies struct {
	LeadRepo   repository.LeadRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// LeadInput describes a new lead.
type LeadInput struct {
	Name           string
	Company        string
	Email          string
	Status         domain.LeadStatus
	Score          int
	LastContact    *time.Time
	EstimatedValue float64
}

// LeadPatch carries partial lead updates.
type LeadPatch struct {
	Name           *string
	Company        *string
	Email          *string
	Status         *domain.LeadStatus
	Score          *int
	LastContact    *time.Time
	EstimatedValue *float64
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:     deps.LeadRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns leads newest first.
func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	return s.leads.List(ctx)
}

// Get fetches one lead.
func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "lead")
	}
	return lead, nil
}

// Create stores a new lead.
func (s *LeadService) Create(ctx context.Context, actor domain.Identity, input LeadInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		Name:           strings.TrimSpace(input.Name),
		Company:        strings.TrimSpace(input.Company),
		Email:          strings.TrimSpace(input.Email),
		Status:         input.Status,
		Score:          input.Score,
		LastContact:    input.LastContact,
		EstimatedValue: input.EstimatedValue,
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventLeadCreated, actor, lead.ID, events.LeadPayload{Name: lead.Name, Company: lead.Company, Status: lead.Status})
	return lead, nil
}

// Update applies patch to the lead with id.
func (s *LeadService) Update(ctx context.Context, actor domain.Identity, id string, patch LeadPatch) (*domain.Lead, error) {
	lead, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		lead.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Company != nil {
		lead.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Email != nil {
		lead.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Status != nil {
		lead.Status = *patch.Status
	}
	if patch.Score != nil {
		lead.Score = *patch.Score
	}
	if patch.LastContact != nil {
		lead.LastContact = patch.LastContact
	}
	if patch.EstimatedValue != nil {
		lead.EstimatedValue = *patch.EstimatedValue
	}
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, notFound(err, "lead")
	}
	s.publish(ctx, events.EventLeadUpdated, actor, lead.ID, events.LeadPayload{Name: lead.Name, Company: lead.Company, Status: lead.Status})
	return lead, nil
}

// notFound maps a missing row to a 404 for resource and passes other errors through.
func notFound(err error, resource string) error {
	if apperrors.ToDomainError(err).Code == apperrors.CodeNotFound {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
