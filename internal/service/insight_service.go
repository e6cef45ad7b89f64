package service

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/insight"
	"github.com/spec-kit/ops-console/internal/observability"
	"github.com/spec-kit/ops-console/internal/repository"
)

// Fallback texts served when the completion API cannot answer.
const (
	FallbackLeadInsight    = "Focus on establishing direct communication and identifying key pain points."
	FallbackScoreReasoning = "Score based on historical engagement patterns."
)

// InsightService produces AI sales hints for leads.
type InsightService struct {
	leads     repository.LeadRepository
	generator insight.Generator
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// InsightDependencies bundles collaborators for InsightService.
type InsightDependencies struct {
	LeadRepo  repository.LeadRepository
	Generator insight.Generator
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

// NewInsightService constructs the service.
func NewInsightService(deps InsightDependencies) *InsightService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{
		leads:     deps.LeadRepo,
		generator: deps.Generator,
		metrics:   deps.Metrics,
		logger:    logger,
	}
}

// LeadInsight returns two sentences of sales advice for the lead.
func (s *InsightService) LeadInsight(ctx context.Context, leadID string) (string, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return "", notFound(err, "lead")
	}
	prompt := insight.Prompt{
		Text: fmt.Sprintf("Provide a 2-sentence strategic advice for sales representative to handle a lead named %s from %s who has a high-priority lead score of %d/100.",
			lead.Name, lead.Company, lead.Score),
		Temperature:     0.7,
		MaxOutputTokens: 100,
	}
	return s.generate(ctx, lead.ID, prompt, FallbackLeadInsight), nil
}

// ScoreReasoning returns one sentence explaining the lead's score.
func (s *InsightService) ScoreReasoning(ctx context.Context, leadID string) (string, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return "", notFound(err, "lead")
	}
	payload, err := json.Marshal(leadSnapshot(lead))
	if err != nil {
		return "", err
	}
	prompt := insight.Prompt{
		Text:        fmt.Sprintf("Analyze this lead and give a 1-sentence reason for its current score of %d: %s", lead.Score, payload),
		Temperature: 0.5,
	}
	return s.generate(ctx, lead.ID, prompt, FallbackScoreReasoning), nil
}

func (s *InsightService) generate(ctx context.Context, leadID string, prompt insight.Prompt, fallback string) string {
	if s.generator == nil {
		s.metrics.RecordInsight("fallback")
		return fallback
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.metrics.RecordInsight("fallback")
		s.logger.Warn("insight generation failed; serving fallback", zap.String("lead_id", leadID), zap.Error(err))
		return fallback
	}
	s.metrics.RecordInsight("ok")
	return text
}

type leadView struct {
	Name           string            `json:"name"`
	Company        string            `json:"company"`
	Email          string            `json:"email"`
	Status         domain.LeadStatus `json:"status"`
	Score          int               `json:"score"`
	EstimatedValue float64           `json:"estimatedValue"`
	LastContact    string            `json:"lastContact,omitempty"`
}

func leadSnapshot(l *domain.Lead) leadView {
	v := leadView{
		Name:           l.Name,
		Company:        l.Company,
		Email:          l.Email,
		Status:         l.Status,
		Score:          l.Score,
		EstimatedValue: l.EstimatedValue,
	}
	if l.LastContact != nil {
		v.LastContact = l.LastContact.Format("2006-01-02")
	}
	return v
}
