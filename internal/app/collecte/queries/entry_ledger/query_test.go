package entry_ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestEntryLedger(t *testing.T) {
	ctx := context.Background()
	w := testutil.NewWorld(testutil.Day(2025, 3, 10))
	w.SeedProduct(t, "A", "111")
	w.SeedProduct(t, "B", "222")
	for i, p := range []string{"A", "B", "A"} {
		e, err := domain.NewEntry("e"+string(rune('1'+i)), "c2025", "s1", p, "centre-1", float64(i+1), w.Clock.Now())
		require.NoError(t, err)
		require.NoError(t, w.Entries.Create(ctx, e))
		w.Clock.Advance(time.Hour)
	}
	other, err := domain.NewEntry("x", "c2025", "s2", "A", "centre-1", 9, w.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, w.Entries.Create(ctx, other))

	rows, err := NewQuery(w.Entries).Execute(ctx, &Request{CampaignID: "c2025", StoreID: "s1"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"e3", "e2", "e1"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, "222", rows[1].Barcode)
	assert.Equal(t, "Epicerie", rows[1].Family)
	assert.Equal(t, "2025-03-10T02:00:00.000Z", rows[0].Date)
}
