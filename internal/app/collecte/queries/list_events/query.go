package list_events

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType   string // e.g. "campaign.created"
	AggregateID string
	Status      string // "pending", "completed", "failed"
	Limit       int
}

// Query handles the list events query.
type Query struct {
	readModel contracts.EventsReadModel
}

// NewQuery creates a new list events query.
func NewQuery(readModel contracts.EventsReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves outbox events, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.EventView, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	events, err := q.readModel.ListEvents(ctx, contracts.EventFilter{
		EventType:   req.EventType,
		AggregateID: req.AggregateID,
		Status:      req.Status,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*contracts.EventView, 0, len(events))
	for _, e := range events {
		out = append(out, contracts.NewEventView(e))
	}
	return out, nil
}
