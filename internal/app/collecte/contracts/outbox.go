package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// Outbox event statuses.
const (
	EventStatusPending   = "pending"
	EventStatusCompleted = "completed"
	EventStatusFailed    = "failed"
)

// OutboxEvent is a domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// EnrichEvent converts a domain event to an outbox row with a fresh id and
// a JSON payload.
func EnrichEvent(event domain.DomainEvent, now time.Time) (*OutboxEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s event: %w", event.EventType(), err)
	}
	return &OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     string(payload),
		Status:      EventStatusPending,
		CreatedAt:   now,
	}, nil
}

// EnrichEvents converts a batch of domain events.
func EnrichEvents(events []domain.DomainEvent, now time.Time) ([]*OutboxEvent, error) {
	out := make([]*OutboxEvent, 0, len(events))
	for _, ev := range events {
		oe, err := EnrichEvent(ev, now)
		if err != nil {
			return nil, err
		}
		out = append(out, oe)
	}
	return out, nil
}

// EventFilter selects outbox rows, newest first.
type EventFilter struct {
	EventType   string
	AggregateID string
	Status      string
	Limit       int
}

// EventsReadModel reads the outbox.
type EventsReadModel interface {
	ListEvents(ctx context.Context, f EventFilter) ([]*OutboxEvent, error)
}
