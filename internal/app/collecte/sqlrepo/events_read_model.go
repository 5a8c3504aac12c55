package sqlrepo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/models/m_outbox"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// EventsReadModel reads outbox_events through sqlx.
type EventsReadModel struct {
	db *sqlx.DB
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(db *sqlx.DB) *EventsReadModel {
	return &EventsReadModel{db: db}
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

	var rows []outboxRow
	err := selectAll(ctx, r.db, &rows, b.
		OrderBy(m_outbox.CreatedAt, query.Desc).
		OrderBy(m_outbox.EventID, query.Asc).
		Limit(int64(f.Limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out := make([]*contracts.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, &contracts.OutboxEvent{
			EventID:     row.EventID,
			EventType:   row.EventType,
			AggregateID: row.AggregateID,
			Payload:     row.Payload.String,
			Status:      row.Status,
			CreatedAt:   row.CreatedAt.UTC(),
			ProcessedAt: timePtr(row.ProcessedAt),
		})
	}
	return out, nil
}
