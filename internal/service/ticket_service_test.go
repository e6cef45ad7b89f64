package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/repository/repotest"
)

func newTicketService() *TicketService {
	store := repotest.NewTickets()
	return NewTicketService(TicketDependencies{TicketRepo: store, MessageRepo: store.Messages()})
}

func TestTicketLifecycle(t *testing.T) {
	svc := newTicketService()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, bob, TicketCreateInput{Subject: " Printer jam ", Customer: "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen || ticket.Priority != domain.TicketPriorityMedium || ticket.Subject != "Printer jam" {
		t.Fatalf("defaults not applied: %+v", ticket)
	}

	if _, err := svc.AddMessage(ctx, bob, ticket.ID, MessageInput{Text: "Looking into it"}); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if _, err := svc.AddMessage(ctx, bob, ticket.ID, MessageInput{Text: "Thanks!", FromClient: true}); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	resolved := domain.TicketStatusResolved
	updated, err := svc.Update(ctx, bob, ticket.ID, TicketPatch{Status: &resolved})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.TicketStatusResolved || len(updated.Messages) != 2 {
		t.Fatalf("updated = %+v", updated)
	}

	list, err := svc.List(ctx, TicketListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %+v", list)
	}
	msgs := list[0].Messages
	if len(msgs) != 2 || msgs[0].Sender != "Bob" || !msgs[0].IsAdmin || msgs[1].Sender != "Acme" || msgs[1].IsAdmin {
		t.Fatalf("thread = %+v", msgs)
	}
}

func TestTicketNotFound(t *testing.T) {
	svc := newTicketService()
	ctx := context.Background()

	open := domain.TicketStatusOpen
	_, err := svc.Update(ctx, bob, "missing", TicketPatch{Status: &open})
	assertStatus(t, err, http.StatusNotFound)
	_, err = svc.AddMessage(ctx, bob, "missing", MessageInput{Text: "hi"})
	assertStatus(t, err, http.StatusNotFound)
}

func TestTicketListFilter(t *testing.T) {
	svc := newTicketService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, bob, TicketCreateInput{Subject: "a", Customer: "c", Priority: domain.TicketPriorityHigh}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, bob, TicketCreateInput{Subject: "b", Customer: "c", Priority: domain.TicketPriorityLow}); err != nil {
		t.Fatal(err)
	}

	high, err := svc.List(ctx, TicketListFilter{Priorities: []domain.TicketPriority{domain.TicketPriorityHigh}})
	if err != nil {
		t.Fatal(err)
	}
	if len(high) != 1 || high[0].Subject != "a" || high[0].Messages == nil {
		t.Fatalf("filtered = %+v", high)
	}
}
