package delete_campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestDeleteCampaign(t *testing.T) {
	ctx := context.Background()
	w := testutil.NewWorld(testutil.Day(2025, 3, 10))
	w.SeedCampaign(t, "c1", 2025, testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 31), nil)
	interactor := NewInteractor(w.Campaigns, w.Clock)

	require.NoError(t, interactor.Execute(ctx, &Request{CampaignID: "c1"}))

	raw := w.Campaigns.Raw("c1")
	require.NotNil(t, raw, "soft delete keeps the row")
	assert.True(t, raw.IsDeleted())
	assert.Equal(t, domain.StatusArchived, raw.StatusAt(w.Clock.Now()))
	assert.Contains(t, w.Campaigns.Types(), domain.EventCampaignArchived)

	err := interactor.Execute(ctx, &Request{CampaignID: "c1"})
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}
