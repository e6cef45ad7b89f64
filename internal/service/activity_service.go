package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
)

// ActivityService turns domain events into recent activity feed entries.
type ActivityService struct {
	dispatcher events.Dispatcher
	feed       repository.ActivityRepository
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, feed repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{dispatcher: dispatcher, feed: feed, logger: logger}
}

// RegisterHandlers subscribes to every event type.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range events.AllEventTypes {
		a.dispatcher.Subscribe(t, a.handle)
	}
}

// Recent returns up to limit entries, newest first.
func (a *ActivityService) Recent(ctx context.Context, limit int64) ([]domain.Activity, error) {
	return a.feed.Recent(ctx, limit)
}

// handle records the event. Feed outages are logged and swallowed.
func (a *ActivityService) handle(ctx context.Context, event events.Event) error {
	activity, ok := describe(event)
	if !ok {
		return nil
	}
	if err := a.feed.Push(ctx, activity); err != nil {
		a.logger.Warn("activity feed write failed",
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
	return nil
}

func describe(event events.Event) (domain.Activity, bool) {
	activity := domain.Activity{
		ID:        event.ID,
		User:      event.Actor.Name,
		Timestamp: event.Timestamp,
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	switch p := event.Payload.(type) {
	case events.PresencePayload:
		activity.Type = domain.ActivitySystem
		if event.Type == events.EventPresenceCheckedIn {
			activity.Action = fmt.Sprintf("checked in at %s", p.Location)
		} else {
			activity.Action = fmt.Sprintf("checked out from %s", p.Location)
		}
	case events.LeadPayload:
		activity.Type = domain.ActivityLead
		if event.Type == events.EventLeadCreated {
			activity.Action = fmt.Sprintf("added lead %s from %s", p.Name, p.Company)
		} else {
			activity.Action = fmt.Sprintf("moved lead %s to %s", p.Name, p.Status)
		}
	case events.DealPayload:
		activity.Type = domain.ActivitySale
		switch {
		case event.Type == events.EventDealCreated:
			activity.Action = fmt.Sprintf("opened deal %s", p.Title)
		case p.OldStage != p.NewStage:
			activity.Action = fmt.Sprintf("moved deal %s to %s", p.Title, p.NewStage)
		default:
			activity.Action = fmt.Sprintf("updated deal %s", p.Title)
		}
	case events.TicketPayload:
		activity.Type = domain.ActivitySupport
		if event.Type == events.EventTicketCreated {
			activity.Action = fmt.Sprintf("opened ticket %q", p.Subject)
		} else {
			activity.Action = fmt.Sprintf("set ticket %q to %s", p.Subject, p.Status)
		}
	case events.TicketMessageAddedPayload:
		activity.Type = domain.ActivitySupport
		activity.Action = "replied to a ticket"
	case events.NamedPayload:
		switch event.Type {
		case events.EventUserRegistered:
			activity.Type = domain.ActivitySystem
			activity.Action = "joined the console"
		case events.EventCustomerCreated:
			activity.Type = domain.ActivitySale
			activity.Action = fmt.Sprintf("added customer %s", p.Name)
		case events.EventInventoryChanged:
			activity.Type = domain.ActivitySystem
			activity.Action = fmt.Sprintf("updated stock for %s", p.Name)
		default:
			return domain.Activity{}, false
		}
	default:
		return domain.Activity{}, false
	}
	return activity, true
}
