package list_eligible_stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestListEligibleStores(t *testing.T) {
	ctx := context.Background()
	w := testutil.NewWorld(testutil.Day(2025, 3, 10))
	w.SeedCentre(t, "centre-1")
	w.SeedCentre(t, "centre-2")
	w.SeedStore(t, "a", "centre-1")
	w.SeedStore(t, "b", "centre-1")
	w.SeedStore(t, "c", "centre-2")
	w.SeedCampaign(t, "c2025", 2025, testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 31), nil)
	w.Enroll(t, "c2025", "a", true)
	w.Enroll(t, "c2025", "b", false)
	w.Enroll(t, "c2025", "c", true)
	q := NewQuery(w.Directory.Stores(), w.Resolver(), w.Clock)

	stores, err := q.Execute(ctx, &Request{CentreID: "centre-1"})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "a", stores[0].ID)

	w.Clock.Set(testutil.Day(2025, 5, 1))
	_, err = q.Execute(ctx, &Request{CentreID: "centre-1"})
	assert.ErrorIs(t, err, domain.ErrNoOpenCampaign)
}
