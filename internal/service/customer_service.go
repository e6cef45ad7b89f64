package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
)

// CustomerService manages customer profiles.
type CustomerService struct {
	customers repository.CustomerRepository
	publisher
}

// CustomerDependencies bundles collaborators for CustomerService.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// CustomerInput describes a new customer.
type CustomerInput struct {
	Name         string
	Email        string
	Phone        string
	Company      string
	TotalSpent   float64
	LastPurchase *time.Time
	Notes        []string
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers: deps.CustomerRepo,
		publisher: publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// List returns customers newest first.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// Create stores a new customer.
func (s *CustomerService) Create(ctx context.Context, actor domain.Identity, input CustomerInput) (*domain.Customer, error) {
	notes := make([]string, 0, len(input.Notes))
	for _, n := range input.Notes {
		if n = strings.TrimSpace(n); n != "" {
			notes = append(notes, n)
		}
	}
	customer := &domain.Customer{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Company:      strings.TrimSpace(input.Company),
		TotalSpent:   input.TotalSpent,
		LastPurchase: input.LastPurchase,
		Notes:        notes,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventCustomerCreated, actor, customer.ID, events.NamedPayload{Name: customer.Name})
	return customer, nil
}
