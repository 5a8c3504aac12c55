package entry_context

import (
	"context"
	"errors"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain/services"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request identifies the store a centre is about to record for. A nil At
// means now.
type Request struct {
	StoreID        string
	ActingCentreID string
	At             *time.Time
}

// Query runs the pre-entry checks without writing anything.
type Query struct {
	stores   contracts.StoreRepository
	resolver *services.EligibilityResolver
	clock    clock.Clock
}

// NewQuery creates a new entry context query.
func NewQuery(stores contracts.StoreRepository, resolver *services.EligibilityResolver, clock clock.Clock) *Query {
	return &Query{stores: stores, resolver: resolver, clock: clock}
}

// Execute applies the same ownership and eligibility rules as recording.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.EntryContextView, error) {
	store, err := q.stores.GetByID(ctx, req.StoreID)
	if err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
		return nil, err
	}
	if store == nil || !store.BelongsTo(req.ActingCentreID) {
		return nil, domain.ErrStoreForbidden
	}

	at := q.clock.Now()
	if req.At != nil {
		at = *req.At
	}
	campaign, err := q.resolver.Resolve(ctx, store.ID, at)
	if err != nil {
		return nil, err
	}

	return &contracts.EntryContextView{
		CampaignID:    campaign.ID(),
		CampaignTitle: campaign.Title(),
		StoreID:       store.ID,
		StoreName:     store.Name,
		StoreAddress:  store.Address,
		CentreID:      store.CentreID,
	}, nil
}
