package list_events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

type stubReadModel struct {
	got    contracts.EventFilter
	events []*contracts.OutboxEvent
}

func (s *stubReadModel) ListEvents(_ context.Context, f contracts.EventFilter) ([]*contracts.OutboxEvent, error) {
	s.got = f
	return s.events, nil
}

func TestListEvents(t *testing.T) {
	ctx := context.Background()
	rm := &stubReadModel{events: []*contracts.OutboxEvent{{
		EventID:     "ev1",
		EventType:   "campaign.created",
		AggregateID: "c1",
		Payload:     `{"year":2025}`,
		Status:      contracts.EventStatusPending,
		CreatedAt:   time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
	}}}
	q := NewQuery(rm)

	events, err := q.Execute(ctx, &Request{EventType: "campaign.created"})
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, rm.got.Limit)
	assert.Equal(t, "campaign.created", rm.got.EventType)
	require.Len(t, events, 1)
	assert.JSONEq(t, `{"year":2025}`, string(events[0].Payload))
	assert.Equal(t, "2025-01-10T08:00:00.000Z", events[0].CreatedAt)

	_, err = q.Execute(ctx, &Request{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, rm.got.Limit)
}
