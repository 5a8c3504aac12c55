package contracts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

func TestFormatTime(t *testing.T) {
	paris := time.FixedZone("CEST", 2*3600)
	assert.Equal(t, "2025-03-01T16:00:00.000Z", FormatTime(time.Date(2025, 3, 1, 18, 0, 0, 0, paris)))
	assert.Nil(t, FormatOptionalTime(nil))
}

func TestNewCampaignView_StatusComputedAtRead(t *testing.T) {
	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	c, err := domain.NewCampaign("c1", domain.CampaignInput{
		Year:     2025,
		Schedule: domain.Schedule{StartAt: &start, EndAt: &end},
	}, created)
	require.NoError(t, err)

	assert.Equal(t, "SCHEDULED", NewCampaignView(c, created).Status)

	v := NewCampaignView(c, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "ACTIVE", v.Status)
	require.NotNil(t, v.DefaultStartAt)
	assert.Equal(t, "2025-03-01T00:00:00.000Z", *v.DefaultStartAt)
	assert.Nil(t, v.GraceUntil)
	assert.Nil(t, v.DeletedAt)
}

func TestNewEventView_Payload(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	v := NewEventView(&OutboxEvent{EventID: "e1", Payload: `{"weight":2.5}`, CreatedAt: at})
	assert.JSONEq(t, `{"weight":2.5}`, string(v.Payload))

	// a corrupt payload is still rendered, as a JSON string
	v = NewEventView(&OutboxEvent{EventID: "e2", Payload: `{broken`, CreatedAt: at})
	var s string
	require.NoError(t, json.Unmarshal(v.Payload, &s))
	assert.Equal(t, "{broken", s)
	assert.Nil(t, v.ProcessedAt)
}

func TestEnrichEvents(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	e, err := domain.NewEntry("e1", "c1", "s1", "p1", "centre-1", 1.5, now)
	require.NoError(t, err)

	out, err := EnrichEvents([]domain.DomainEvent{e.RecordedEvent()}, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotEmpty(t, out[0].EventID)
	assert.Equal(t, domain.EventEntryRecorded, out[0].EventType)
	assert.Equal(t, "e1", out[0].AggregateID)
	assert.Equal(t, EventStatusPending, out[0].Status)
	assert.True(t, json.Valid([]byte(out[0].Payload)))
}
