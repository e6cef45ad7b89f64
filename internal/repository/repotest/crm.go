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

// table keeps rows in insertion order; listings return them newest first.
type table[T any] struct {
	mu    sync.Mutex
	order []string
	rows  map[string]T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) insert(row T) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := uuid.NewString()
	t.order = append(t.order, id)
	t.rows[id] = row
	return id
}

func (t *table[T]) put(id string, row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, pgx.ErrNoRows
	}
	return row, nil
}

func (t *table[T]) newestFirst() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, 0, len(t.order))
	for i := len(t.order) - 1; i >= 0; i-- {
		out = append(out, t.rows[t.order[i]])
	}
	return out
}

// Leads is an in-memory repository.LeadRepository.
type Leads struct{ t table[domain.Lead] }

var _ repository.LeadRepository = (*Leads)(nil)

// NewLeads returns an empty store.
func NewLeads() *Leads { return &Leads{t: newTable[domain.Lead]()} }

func (r *Leads) Create(_ context.Context, lead *domain.Lead) error {
	lead.CreatedAt = time.Now().UTC()
	lead.ID = r.t.insert(*lead)
	return r.t.put(lead.ID, *lead)
}

func (r *Leads) Update(_ context.Context, lead *domain.Lead) error {
	return r.t.put(lead.ID, *lead)
}

func (r *Leads) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	lead, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *Leads) List(context.Context) ([]domain.Lead, error) {
	return r.t.newestFirst(), nil
}

// Deals is an in-memory repository.DealRepository.
type Deals struct{ t table[domain.Deal] }

var _ repository.DealRepository = (*Deals)(nil)

// NewDeals returns an empty store.
func NewDeals() *Deals { return &Deals{t: newTable[domain.Deal]()} }

func (r *Deals) Create(_ context.Context, deal *domain.Deal) error {
	deal.CreatedAt = time.Now().UTC()
	deal.ID = r.t.insert(*deal)
	return r.t.put(deal.ID, *deal)
}

func (r *Deals) Update(_ context.Context, deal *domain.Deal) error {
	return r.t.put(deal.ID, *deal)
}

func (r *Deals) GetByID(_ context.Context, id string) (*domain.Deal, error) {
	deal, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *Deals) List(context.Context) ([]domain.Deal, error) {
	return r.t.newestFirst(), nil
}

// Customers is an in-memory repository.CustomerRepository.
type Customers struct{ t table[domain.Customer] }

var _ repository.CustomerRepository = (*Customers)(nil)

// NewCustomers returns an empty store.
func NewCustomers() *Customers { return &Customers{t: newTable[domain.Customer]()} }

func (r *Customers) Create(_ context.Context, c *domain.Customer) error {
	c.CreatedAt = time.Now().UTC()
	c.ID = r.t.insert(*c)
	return r.t.put(c.ID, *c)
}

func (r *Customers) List(context.Context) ([]domain.Customer, error) {
	return r.t.newestFirst(), nil
}

// Inventory is an in-memory repository.InventoryRepository with unique SKUs.
type Inventory struct{ t table[domain.InventoryItem] }

var _ repository.InventoryRepository = (*Inventory)(nil)

// NewInventory returns an empty store.
func NewInventory() *Inventory { return &Inventory{t: newTable[domain.InventoryItem]()} }

func (r *Inventory) Create(_ context.Context, item *domain.InventoryItem) error {
	if r.skuTaken(item.SKU, "") {
		return repository.ErrSKUTaken
	}
	item.CreatedAt = time.Now().UTC()
	item.ID = r.t.insert(*item)
	return r.t.put(item.ID, *item)
}

func (r *Inventory) Update(_ context.Context, item *domain.InventoryItem) error {
	if r.skuTaken(item.SKU, item.ID) {
		return repository.ErrSKUTaken
	}
	return r.t.put(item.ID, *item)
}

func (r *Inventory) GetByID(_ context.Context, id string) (*domain.InventoryItem, error) {
	item, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Inventory) List(context.Context) ([]domain.InventoryItem, error) {
	return r.t.newestFirst(), nil
}

func (r *Inventory) skuTaken(sku, exceptID string) bool {
	for _, item := range r.t.newestFirst() {
		if item.SKU == sku && item.ID != exceptID {
			return true
		}
	}
	return false
}

// Tickets is an in-memory store implementing both the ticket and the ticket
// message repositories.
type Tickets struct {
	t        table[domain.Ticket]
	mu       sync.Mutex
	messages []domain.TicketMessage
}

var (
	_ repository.TicketRepository        = (*Tickets)(nil)
	_ repository.TicketMessageRepository = (*TicketMessages)(nil)
)

// NewTickets returns an empty store.
func NewTickets() *Tickets { return &Tickets{t: newTable[domain.Ticket]()} }

// Messages returns the message repository view of the store.
func (r *Tickets) Messages() *TicketMessages { return &TicketMessages{store: r} }

func (r *Tickets) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.CreatedAt = time.Now().UTC()
	row := *ticket
	row.Messages = nil
	ticket.ID = r.t.insert(row)
	row.ID = ticket.ID
	return r.t.put(ticket.ID, row)
}

func (r *Tickets) Update(_ context.Context, ticket *domain.Ticket) error {
	row := *ticket
	row.Messages = nil
	return r.t.put(ticket.ID, row)
}

func (r *Tickets) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *Tickets) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for _, ticket := range r.t.newestFirst() {
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, ticket.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !contains(filter.Priorities, ticket.Priority) {
			continue
		}
		result = append(result, ticket)
	}
	return result, nil
}

// TicketMessages is the message view over a Tickets store.
type TicketMessages struct{ store *Tickets }

func (m *TicketMessages) Create(_ context.Context, msg *domain.TicketMessage) error {
	if _, err := m.store.t.get(msg.TicketID); err != nil {
		return err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()
	m.store.messages = append(m.store.messages, *msg)
	return nil
}

func (m *TicketMessages) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketMessage, error) {
	grouped, err := m.ListByTickets(ctx, []string{ticketID})
	if err != nil {
		return nil, err
	}
	if msgs, ok := grouped[ticketID]; ok {
		return msgs, nil
	}
	return []domain.TicketMessage{}, nil
}

func (m *TicketMessages) ListByTickets(_ context.Context, ticketIDs []string) (map[string][]domain.TicketMessage, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	result := make(map[string][]domain.TicketMessage, len(ticketIDs))
	for _, msg := range m.store.messages {
		if contains(ticketIDs, msg.TicketID) {
			result[msg.TicketID] = append(result[msg.TicketID], msg)
		}
	}
	for id := range result {
		msgs := result[id]
		sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	}
	return result, nil
}

// Analytics computes the overview from the other in-memory stores.
type Analytics struct {
	Customers *Customers
	Leads     *Leads
	Deals     *Deals
}

var _ repository.AnalyticsRepository = (*Analytics)(nil)

func (a *Analytics) Overview(context.Context) (repository.Overview, error) {
	var o repository.Overview
	for _, c := range a.Customers.t.newestFirst() {
		o.Revenue += c.TotalSpent
	}
	o.Leads = int64(len(a.Leads.t.newestFirst()))
	o.Deals = int64(len(a.Deals.t.newestFirst()))
	return o, nil
}

// Activities is an in-memory capped feed.
type Activities struct {
	mu    sync.Mutex
	limit int
	items []domain.Activity
	Err   error
}

var _ repository.ActivityRepository = (*Activities)(nil)

// NewActivities returns a feed holding at most capacity entries.
func NewActivities(capacity int) *Activities { return &Activities{limit: capacity} }

func (a *Activities) Push(_ context.Context, activity domain.Activity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.items = append([]domain.Activity{activity}, a.items...)
	if len(a.items) > a.limit {
		a.items = a.items[:a.limit]
	}
	return nil
}

func (a *Activities) Recent(_ context.Context, limit int64) ([]domain.Activity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	n := len(a.items)
	if limit > 0 && int(limit) < n {
		n = int(limit)
	}
	return append([]domain.Activity{}, a.items[:n]...), nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
