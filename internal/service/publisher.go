package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
)

// publisher fills in event ids and timestamps and swallows subscriber errors
// after logging them; a failing subscriber never fails the request.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, actor domain.Identity, subjectID string, payload any) {
	if p.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.ActorFrom(actor),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event subscriber failed",
			zap.String("event_type", string(eventType)),
			zap.String("subject_id", subjectID),
			zap.Error(err))
	}
}
