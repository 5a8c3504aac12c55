package resolve_active_campaign

import (
	"context"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain/services"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request asks which campaign StoreID may record for. A nil At means now.
type Request struct {
	StoreID string
	At      *time.Time
}

// Query handles the eligibility lookup.
type Query struct {
	resolver *services.EligibilityResolver
	clock    clock.Clock
}

// NewQuery creates a new resolve active campaign query.
func NewQuery(resolver *services.EligibilityResolver, clock clock.Clock) *Query {
	return &Query{resolver: resolver, clock: clock}
}

// Execute returns the campaign id, or "no campaign open" / "store not
// enrolled".
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ResolvedCampaign, error) {
	at := q.clock.Now()
	if req.At != nil {
		at = *req.At
	}
	c, err := q.resolver.Resolve(ctx, req.StoreID, at)
	if err != nil {
		return nil, err
	}
	return &contracts.ResolvedCampaign{CampaignID: c.ID()}, nil
}
