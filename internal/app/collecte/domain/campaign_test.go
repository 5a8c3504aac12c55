package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaign(t *testing.T) {
	now := day(2025, 1, 10)

	t.Run("applies title and slug defaults", func(t *testing.T) {
		c, err := NewCampaign("c1", CampaignInput{Year: 2025}, now)
		require.NoError(t, err)

		assert.Equal(t, "Collecte 2025", c.Title())
		assert.Equal(t, "collecte-2025", c.Slug())
		assert.Equal(t, StatusDraft, c.StoredStatus())
		assert.Equal(t, now, c.CreatedAt())
		require.Len(t, c.DomainEvents(), 1)
		assert.Equal(t, EventCampaignCreated, c.DomainEvents()[0].EventType())
	})

	t.Run("keeps explicit title and slug", func(t *testing.T) {
		c, err := NewCampaign("c1", CampaignInput{Year: 2025, Title: "  Printemps  ", Slug: "printemps"}, now)
		require.NoError(t, err)
		assert.Equal(t, "Printemps", c.Title())
		assert.Equal(t, "printemps", c.Slug())
	})

	t.Run("seeds the status cache", func(t *testing.T) {
		c, err := NewCampaign("c1", CampaignInput{
			Year:     2025,
			Schedule: Schedule{StartAt: ptr(day(2025, 3, 1)), EndAt: ptr(day(2025, 3, 31))},
		}, now)
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, c.StoredStatus())
	})

	t.Run("rejects out of range years", func(t *testing.T) {
		_, err := NewCampaign("c1", CampaignInput{Year: 2019}, now)
		assert.ErrorIs(t, err, ErrInvalidYear)
		_, err = NewCampaign("c1", CampaignInput{Year: 2101}, now)
		assert.ErrorIs(t, err, ErrInvalidYear)
	})

	t.Run("accepts dates in any order", func(t *testing.T) {
		c, err := NewCampaign("c1", CampaignInput{
			Year:     2025,
			Schedule: Schedule{StartAt: ptr(day(2025, 3, 1)), EndAt: ptr(day(2025, 3, 31)), GraceUntil: ptr(day(2025, 3, 20))},
		}, now)
		require.NoError(t, err)
		assert.Equal(t, day(2025, 3, 20), *c.GraceUntil())

		c, err = NewCampaign("c2", CampaignInput{
			Year:     2025,
			Schedule: Schedule{StartAt: ptr(day(2025, 4, 1)), EndAt: ptr(day(2025, 3, 1))},
		}, now)
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, c.StoredStatus())
	})
}

func TestCampaign_Apply(t *testing.T) {
	start := day(2025, 3, 1)
	end := day(2025, 3, 31)
	now := day(2025, 2, 1)

	t.Run("omitted dates keep their value", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), nil, StatusScheduled)
		title := "Collecte de printemps"

		changed, err := c.Apply(CampaignPatch{Title: &title}, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, start, *c.DefaultStartAt())
		assert.Equal(t, end, *c.DefaultEndAt())
		assert.True(t, c.Changes().Dirty(FieldTitle))
		assert.False(t, c.Changes().Dirty(FieldStartAt))
		assert.Equal(t, now, c.UpdatedAt())
	})

	t.Run("merges the new window with the stored one", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), nil, StatusScheduled)

		_, err := c.Apply(CampaignPatch{GraceUntil: ptr(day(2025, 4, 10))}, now)
		require.NoError(t, err)
		assert.Equal(t, day(2025, 4, 10), *c.GraceUntil())

		_, err = c.Apply(CampaignPatch{EndAt: ptr(day(2025, 4, 20))}, now)
		require.NoError(t, err)
		assert.Equal(t, start, *c.DefaultStartAt())
		assert.Equal(t, day(2025, 4, 20), *c.DefaultEndAt())
		assert.Equal(t, day(2025, 4, 10), *c.GraceUntil())
	})

	t.Run("sets the lock date alone", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), ptr(day(2025, 4, 10)), StatusScheduled)

		changed, err := c.Apply(CampaignPatch{LockedAt: ptr(day(2025, 4, 20))}, now)
		require.NoError(t, err)
		assert.True(t, changed)
		require.NotNil(t, c.LockedAt())
		assert.Equal(t, day(2025, 4, 20), *c.LockedAt())
		assert.Equal(t, start, *c.DefaultStartAt())
		assert.Equal(t, end, *c.DefaultEndAt())
		assert.Equal(t, day(2025, 4, 10), *c.GraceUntil())
		assert.True(t, c.Changes().Dirty(FieldLockedAt))
		assert.False(t, c.Changes().Dirty(FieldStartAt))
		assert.False(t, c.Changes().Dirty(FieldEndAt))
		assert.False(t, c.Changes().Dirty(FieldGraceUntil))

		changed, err = c.Apply(CampaignPatch{LockedAt: ptr(day(2025, 4, 20))}, now)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("identical values are not a change", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), nil, StatusScheduled)
		year := 2025

		changed, err := c.Apply(CampaignPatch{Year: &year, StartAt: ptr(start)}, now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.False(t, c.Changes().HasChanges())
		assert.Empty(t, c.DomainEvents())
	})

	t.Run("deleted campaigns cannot be edited", func(t *testing.T) {
		c := campaignWith(ptr(start), ptr(end), nil, StatusScheduled)
		require.NoError(t, c.MarkDeleted(now))

		title := "x"
		_, err := c.Apply(CampaignPatch{Title: &title}, now)
		assert.ErrorIs(t, err, ErrCampaignArchived)
	})
}

func TestCampaign_MarkDeleted(t *testing.T) {
	c := campaignWith(nil, nil, nil, StatusDraft)
	now := day(2025, 5, 1)

	require.NoError(t, c.MarkDeleted(now))
	assert.True(t, c.IsDeleted())
	assert.Equal(t, StatusArchived, c.StatusAt(now))
	assert.Equal(t, StatusDraft, c.StoredStatus(), "cache is only reconciled by the refresher")
	assert.True(t, c.Changes().Dirty(FieldDeletedAt))

	assert.ErrorIs(t, c.MarkDeleted(now), ErrCampaignArchived)
}

func TestCampaign_Refresh(t *testing.T) {
	c := campaignWith(ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), ptr(day(2025, 4, 10)), StatusScheduled)
	now := day(2025, 4, 5)

	st, changed := c.Refresh(now)
	assert.True(t, changed)
	assert.Equal(t, StatusClosed, st)
	assert.Equal(t, StatusClosed, c.StoredStatus())

	events := c.DomainEvents()
	require.Len(t, events, 1)
	ev, ok := events[0].(*CampaignStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, StatusScheduled, ev.From)
	assert.Equal(t, StatusClosed, ev.To)

	c.ClearEvents()
	_, changed = c.Refresh(now)
	assert.False(t, changed, "second refresh at the same instant is a no-op")
	assert.Empty(t, c.DomainEvents())
	assert.False(t, c.Changes().HasChanges())
}

func TestCampaign_Contains(t *testing.T) {
	c := campaignWith(ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), nil, "")
	assert.True(t, c.Contains(day(2025, 3, 1)))
	assert.True(t, c.Contains(day(2025, 3, 31)))
	assert.False(t, c.Contains(day(2025, 3, 31).Add(time.Second)))

	draft := campaignWith(nil, nil, nil, "")
	assert.False(t, draft.Contains(day(2025, 3, 10)))
}
