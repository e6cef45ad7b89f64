package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/insight"
	"github.com/spec-kit/ops-console/internal/repository/repotest"
)

type stubGenerator struct {
	text    string
	err     error
	prompts []insight.Prompt
}

func (g *stubGenerator) Generate(_ context.Context, p insight.Prompt) (string, error) {
	g.prompts = append(g.prompts, p)
	return g.text, g.err
}

func seedLead(t *testing.T, leads *repotest.Leads) *domain.Lead {
	t.Helper()
	lead := &domain.Lead{Name: "Jane", Company: "Globex", Score: 92, Status: domain.LeadStatusQualified}
	if err := leads.Create(context.Background(), lead); err != nil {
		t.Fatal(err)
	}
	return lead
}

func TestLeadInsightUsesGenerator(t *testing.T) {
	leads := repotest.NewLeads()
	lead := seedLead(t, leads)
	gen := &stubGenerator{text: "Call Jane."}
	svc := NewInsightService(InsightDependencies{LeadRepo: leads, Generator: gen})

	text, err := svc.LeadInsight(context.Background(), lead.ID)
	if err != nil {
		t.Fatal(err)
	}
	if text != "Call Jane." {
		t.Fatalf("text = %q", text)
	}
	p := gen.prompts[0]
	if !strings.Contains(p.Text, "Jane from Globex") || !strings.Contains(p.Text, "92/100") {
		t.Fatalf("prompt = %q", p.Text)
	}
	if p.Temperature != 0.7 || p.MaxOutputTokens != 100 {
		t.Fatalf("prompt config = %+v", p)
	}
}

func TestInsightFallbacks(t *testing.T) {
	leads := repotest.NewLeads()
	lead := seedLead(t, leads)
	ctx := context.Background()

	tests := []struct {
		name string
		gen  insight.Generator
	}{
		{"generator error", &stubGenerator{err: errors.New("down")}},
		{"no generator", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewInsightService(InsightDependencies{LeadRepo: leads, Generator: tt.gen})
			text, err := svc.LeadInsight(ctx, lead.ID)
			if err != nil || text != FallbackLeadInsight {
				t.Fatalf("LeadInsight = %q, %v", text, err)
			}
			text, err = svc.ScoreReasoning(ctx, lead.ID)
			if err != nil || text != FallbackScoreReasoning {
				t.Fatalf("ScoreReasoning = %q, %v", text, err)
			}
		})
	}
}

func TestScoreReasoningPrompt(t *testing.T) {
	leads := repotest.NewLeads()
	lead := seedLead(t, leads)
	gen := &stubGenerator{text: "Engaged recently."}
	svc := NewInsightService(InsightDependencies{LeadRepo: leads, Generator: gen})

	if _, err := svc.ScoreReasoning(context.Background(), lead.ID); err != nil {
		t.Fatal(err)
	}
	p := gen.prompts[0]
	if !strings.HasPrefix(p.Text, "Analyze this lead and give a 1-sentence reason for its current score of 92: {") {
		t.Fatalf("prompt = %q", p.Text)
	}
	if p.Temperature != 0.5 {
		t.Fatalf("temperature = %v", p.Temperature)
	}
}

func TestInsightUnknownLead(t *testing.T) {
	svc := NewInsightService(InsightDependencies{LeadRepo: repotest.NewLeads(), Generator: &stubGenerator{}})
	_, err := svc.LeadInsight(context.Background(), "missing")
	assertStatus(t, err, http.StatusNotFound)
}
