package list_eligible_stores

import (
	"context"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain/services"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request selects a centre. A nil At means now.
type Request struct {
	CentreID string
	At       *time.Time
}

// Query lists the stores of a centre enabled for the open campaign.
type Query struct {
	stores   contracts.StoreRepository
	resolver *services.EligibilityResolver
	clock    clock.Clock
}

// NewQuery creates a new list eligible stores query.
func NewQuery(stores contracts.StoreRepository, resolver *services.EligibilityResolver, clock clock.Clock) *Query {
	return &Query{stores: stores, resolver: resolver, clock: clock}
}

// Execute fails with "no campaign open" under the same rule as the
// resolver. An open campaign with no enabled store yields an empty list.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.StoreView, error) {
	at := q.clock.Now()
	if req.At != nil {
		at = *req.At
	}
	campaign, err := q.resolver.OpenCampaign(ctx, at)
	if err != nil {
		return nil, err
	}

	stores, err := q.stores.ListEnrolled(ctx, req.CentreID, campaign.ID())
	if err != nil {
		return nil, err
	}
	out := make([]*contracts.StoreView, 0, len(stores))
	for _, s := range stores {
		out = append(out, contracts.NewStoreView(s))
	}
	return out, nil
}
