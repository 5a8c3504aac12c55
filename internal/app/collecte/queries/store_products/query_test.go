package store_products

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestStoreProducts(t *testing.T) {
	ctx := context.Background()
	w := testutil.NewWorld(testutil.Day(2025, 3, 10))
	w.SeedProduct(t, "A", "111")
	w.SeedProduct(t, "B", "222")
	for i, p := range []string{"B", "A", "B", "A"} {
		e, err := domain.NewEntry("e"+string(rune('1'+i)), "c2025", "s1", p, "centre-1", 1, w.Clock.Now())
		require.NoError(t, err)
		require.NoError(t, w.Entries.Create(ctx, e))
		w.Clock.Advance(time.Minute)
	}

	rows, err := NewQuery(w.Entries).Execute(ctx, &Request{CampaignID: "c2025", StoreID: "s1"})
	require.NoError(t, err)

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"e4", "e2", "e3", "e1"}, ids)
}
