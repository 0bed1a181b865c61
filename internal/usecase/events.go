package usecase

import (
	"context"
	"time"

	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventType string

const (
	EventUserRegistered       EventType = "user.registered"
	EventProfileUpdated       EventType = "user.profile_updated"
	EventAppointmentBooked    EventType = "appointment.booked"
	EventAppointmentUpdated   EventType = "appointment.updated"
	EventAppointmentCancelled EventType = "appointment.cancelled"
	EventAppointmentStatus    EventType = "appointment.status_changed"
	EventPaymentReceived      EventType = "payment.received"
)

// Event describes one successful state change, addressed to the user it
// affects.
type Event struct {
	Type        EventType
	RecipientID uuid.UUID
	Title       string
	Message     string
	Category    entity.NotificationType
	RelatedID   *uuid.UUID
	OccurredAt  time.Time
}

type EventSink interface {
	Handle(ctx context.Context, event Event) error
}

// Emitter fans an event out to its sinks. Sink failures are logged and
// never reach the caller.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

type emitter struct {
	sinks []EventSink
	log   *zap.Logger
}

func NewEmitter(log *zap.Logger, sinks ...EventSink) Emitter {
	return &emitter{sinks: sinks, log: log.With(zap.String("component", "events"))}
}

func (e *emitter) Emit(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	for _, sink := range e.sinks {
		if err := sink.Handle(ctx, event); err != nil {
			e.log.Warn("Event sink failed",
				zap.Error(err),
				zap.String("event", string(event.Type)),
				zap.String("recipient", event.RecipientID.String()),
			)
		}
	}
}

type notificationSink struct {
	repo repository.NotificationRepository
}

// NewNotificationSink persists every event as an in-app notification.
func NewNotificationSink(repo repository.NotificationRepository) EventSink {
	return &notificationSink{repo: repo}
}

func (s *notificationSink) Handle(ctx context.Context, event Event) error {
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: event.OccurredAt},
		UserID:     event.RecipientID,
		Title:      event.Title,
		Message:    event.Message,
		Type:       event.Category,
		RelatedID:  event.RelatedID,
	}
	return s.repo.Create(ctx, n)
}
