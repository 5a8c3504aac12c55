package refresh_statuses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestRefreshStatuses(t *testing.T) {
	ctx := context.Background()

	// created on 2025-01-10: cached SCHEDULED
	seed := func(t *testing.T) *testutil.World {
		w := testutil.NewWorld(testutil.Day(2025, 1, 10))
		w.SeedCampaign(t, "c2025", 2025, testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 31), testutil.Ptr(testutil.Day(2025, 4, 10)))
		w.SeedCampaign(t, "c2026", 2026, testutil.Day(2026, 3, 1), testutil.Day(2026, 3, 31), nil)
		return w
	}

	t.Run("updates changed rows only and is idempotent", func(t *testing.T) {
		w := seed(t)
		w.Clock.Set(testutil.Day(2025, 3, 10))
		interactor := NewInteractor(w.Campaigns, w.Clock)

		resp, err := interactor.Execute(ctx, &Request{})
		require.NoError(t, err)
		assert.Equal(t, &Response{Scanned: 2, Updated: 1}, resp)
		assert.Equal(t, domain.StatusActive, w.Campaigns.Raw("c2025").StoredStatus())
		assert.Equal(t, domain.StatusScheduled, w.Campaigns.Raw("c2026").StoredStatus())

		resp, err = interactor.Execute(ctx, &Request{})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Updated)
	})

	t.Run("follows the calendar", func(t *testing.T) {
		w := seed(t)
		interactor := NewInteractor(w.Campaigns, w.Clock)

		for _, step := range []struct {
			at   time.Time
			want domain.Status
		}{
			{testutil.Day(2025, 2, 1), domain.StatusScheduled},
			{testutil.Day(2025, 4, 5), domain.StatusClosed},
			{testutil.Day(2025, 4, 15), domain.StatusArchived},
		} {
			w.Clock.Set(step.at)
			_, err := interactor.Execute(ctx, &Request{})
			require.NoError(t, err)
			assert.Equal(t, step.want, w.Campaigns.Raw("c2025").StoredStatus(), step.at.Format("2006-01-02"))
		}
	})

	t.Run("includes soft-deleted campaigns", func(t *testing.T) {
		w := seed(t)
		c, err := w.Campaigns.GetByID(ctx, "c2026")
		require.NoError(t, err)
		require.NoError(t, c.MarkDeleted(w.Clock.Now()))
		require.NoError(t, w.Campaigns.Save(ctx, c))

		resp, err := NewInteractor(w.Campaigns, w.Clock).Execute(ctx, &Request{})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Updated)
		assert.Equal(t, domain.StatusArchived, w.Campaigns.Raw("c2026").StoredStatus())
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		w := seed(t)
		w.Clock.Set(testutil.Day(2025, 3, 10))
		before := w.Campaigns.Saves()

		resp, err := NewInteractor(w.Campaigns, w.Clock).Execute(ctx, &Request{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Updated)
		assert.Equal(t, before, w.Campaigns.Saves())
		assert.Equal(t, domain.StatusScheduled, w.Campaigns.Raw("c2025").StoredStatus())
	})

	t.Run("a failing row does not stop the sweep", func(t *testing.T) {
		w := seed(t)
		w.Clock.Set(testutil.Day(2026, 3, 10))
		w.Campaigns.SaveErr["c2025"] = errors.New("boom")

		resp, err := NewInteractor(w.Campaigns, w.Clock).Execute(ctx, &Request{})
		require.NoError(t, err)
		assert.Equal(t, &Response{Scanned: 2, Updated: 1, Failed: 1}, resp)
		assert.Equal(t, domain.StatusActive, w.Campaigns.Raw("c2026").StoredStatus())
	})
}
