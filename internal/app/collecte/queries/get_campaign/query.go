package get_campaign

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request contains the campaign ID to retrieve.
type Request struct {
	CampaignID string
}

// Query handles the get campaign query.
type Query struct {
	repo  contracts.CampaignRepository
	clock clock.Clock
}

// NewQuery creates a new get campaign query.
func NewQuery(repo contracts.CampaignRepository, clock clock.Clock) *Query {
	return &Query{repo: repo, clock: clock}
}

// Execute retrieves a non-deleted campaign with its status computed now.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.CampaignView, error) {
	c, err := q.repo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	return contracts.NewCampaignView(c, q.clock.Now()), nil
}
