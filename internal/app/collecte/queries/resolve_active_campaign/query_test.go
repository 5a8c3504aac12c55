package resolve_active_campaign

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestResolveActiveCampaign(t *testing.T) {
	ctx := context.Background()
	w := testutil.NewWorld(testutil.Day(2025, 1, 1))
	w.SeedCampaign(t, "c2025", 2025, testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 31), testutil.Ptr(testutil.Day(2025, 4, 10)))
	w.Enroll(t, "c2025", "s1", true)
	w.Enroll(t, "c2025", "s2", false)
	q := NewQuery(w.Resolver(), w.Clock)

	at := func(ts time.Time) *Request {
		return &Request{StoreID: "s1", At: &ts}
	}

	res, err := q.Execute(ctx, at(testutil.Day(2025, 3, 1)))
	require.NoError(t, err)
	assert.Equal(t, "c2025", res.CampaignID)

	res, err = q.Execute(ctx, at(testutil.Day(2025, 3, 31)))
	require.NoError(t, err)
	assert.Equal(t, "c2025", res.CampaignID)

	// closed during grace: no campaign open, even for an enrolled store
	_, err = q.Execute(ctx, at(testutil.Day(2025, 4, 5)))
	assert.ErrorIs(t, err, domain.ErrNoOpenCampaign)

	_, err = q.Execute(ctx, at(testutil.Day(2025, 2, 1)))
	assert.ErrorIs(t, err, domain.ErrNoOpenCampaign)

	w.Clock.Set(testutil.Day(2025, 3, 10))
	_, err = q.Execute(ctx, &Request{StoreID: "s2"})
	assert.ErrorIs(t, err, domain.ErrStoreNotEnrolled)

	_, err = q.Execute(ctx, &Request{StoreID: "s3"})
	assert.ErrorIs(t, err, domain.ErrStoreNotEnrolled)
}
