package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func campaignWith(start, end, grace *time.Time, stored Status) *Campaign {
	return ReconstructCampaign("c1", 2025, "Collecte 2025", "collecte-2025",
		Schedule{StartAt: start, EndAt: end, GraceUntil: grace},
		nil, stored, day(2025, 1, 1), day(2025, 1, 1), nil)
}

func TestComputeStatus_Rules(t *testing.T) {
	start := day(2025, 3, 1)
	end := day(2025, 3, 31)
	grace := day(2025, 4, 10)

	t.Run("deleted campaign is archived whatever the dates", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), ptr(grace), StatusActive)
		c.deletedAt = ptr(day(2025, 3, 2))
		assert.Equal(t, StatusArchived, ComputeStatus(c, day(2025, 3, 10)))
	})

	t.Run("missing start is draft", func(t *testing.T) {
		c := campaignWith(nil, ptr(end), nil, "")
		assert.Equal(t, StatusDraft, ComputeStatus(c, day(2025, 3, 10)))
	})

	t.Run("missing end is draft", func(t *testing.T) {
		c := campaignWith(ptr(start), nil, ptr(grace), StatusActive)
		assert.Equal(t, StatusDraft, ComputeStatus(c, day(2025, 3, 10)))
	})

	t.Run("before start is scheduled", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), ptr(grace), "")
		assert.Equal(t, StatusScheduled, ComputeStatus(c, day(2025, 2, 1)))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), ptr(grace), "")
		assert.Equal(t, StatusActive, ComputeStatus(c, start))
		assert.Equal(t, StatusActive, ComputeStatus(c, end))
		assert.Equal(t, StatusClosed, ComputeStatus(c, grace))
		assert.Equal(t, StatusArchived, ComputeStatus(c, grace.Add(time.Nanosecond)))
	})

	t.Run("no grace archives right after end", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), nil, StatusActive)
		assert.Equal(t, StatusArchived, ComputeStatus(c, end.Add(time.Second)))
	})

	t.Run("grace before end archives right after end", func(t *testing.T) {
		early := day(2025, 3, 20)
		c := campaignWith(ptr(start), ptr(end), ptr(early), StatusActive)
		assert.Equal(t, StatusActive, ComputeStatus(c, day(2025, 3, 25)))
		assert.Equal(t, StatusActive, ComputeStatus(c, end))
		assert.Equal(t, StatusArchived, ComputeStatus(c, end.Add(time.Second)))
	})

	t.Run("stored status never overrides a matching rule", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), ptr(grace), StatusArchived)
		assert.Equal(t, StatusActive, ComputeStatus(c, day(2025, 3, 15)))
	})
}

func TestComputeStatus_Scenario2025(t *testing.T) {
	c := campaignWith(ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), ptr(day(2025, 4, 10)), "")

	cases := map[string]struct {
		now  time.Time
		want Status
	}{
		"february":     {day(2025, 2, 1), StatusScheduled},
		"mid march":    {day(2025, 3, 15), StatusActive},
		"grace period": {day(2025, 4, 5), StatusClosed},
		"after grace":  {day(2025, 4, 15), StatusArchived},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeStatus(c, tc.now))
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("CLOSED")
	assert.NoError(t, err)
	assert.Equal(t, StatusClosed, st)

	st, err = ParseStatus("")
	assert.NoError(t, err)
	assert.Equal(t, Status(""), st)

	_, err = ParseStatus("PAUSED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.ErrorIs(t, err, ErrInvalid)
}
