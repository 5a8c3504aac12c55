package list_all_campaigns

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Query returns every non-deleted campaign, newest year first.
type Query struct {
	repo  contracts.CampaignRepository
	clock clock.Clock
}

// NewQuery creates a new list all campaigns query.
func NewQuery(repo contracts.CampaignRepository, clock clock.Clock) *Query {
	return &Query{repo: repo, clock: clock}
}

// Execute runs the query.
func (q *Query) Execute(ctx context.Context) ([]*contracts.CampaignView, error) {
	campaigns, err := q.repo.ListAll(ctx, false)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()
	out := make([]*contracts.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, contracts.NewCampaignView(c, now))
	}
	return out, nil
}
