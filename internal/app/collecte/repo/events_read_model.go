package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/models/m_outbox"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// EventsReadModel reads outbox_events from Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) *EventsReadModel {
	return &EventsReadModel{client: client}
}

var _ contracts.EventsReadModel = (*EventsReadModel)(nil)

// ListEvents returns outbox rows matching f, newest first.
func (r *EventsReadModel) ListEvents(ctx context.Context, f contracts.EventFilter) ([]*contracts.OutboxEvent, error) {
	b := query.From(m_outbox.TableName).Select(m_outbox.Columns...)
	if f.EventType != "" {
		b = b.Where(query.Eq(m_outbox.EventType, f.EventType))
	}
	if f.AggregateID != "" {
		b = b.Where(query.Eq(m_outbox.AggregateID, f.AggregateID))
	}
	if f.Status != "" {
		b = b.Where(query.Eq(m_outbox.Status, f.Status))
	}
	stmt := b.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(int64(f.Limit)).Build()

	events, err := queryAll(ctx, r.client.Single(), stmt, func(row *spanner.Row) (*contracts.OutboxEvent, error) {
		var d m_outbox.Data
		if err := row.ToStruct(&d); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		payload := ""
		if d.Payload.Valid {
			raw, err := json.Marshal(d.Payload.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to encode payload: %w", err)
			}
			payload = string(raw)
		}
		return &contracts.OutboxEvent{
			EventID:     d.EventID,
			EventType:   d.EventType,
			AggregateID: d.AggregateID,
			Payload:     payload,
			Status:      d.Status,
			CreatedAt:   d.CreatedAt.UTC(),
			ProcessedAt: timePtr(d.ProcessedAt),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}
