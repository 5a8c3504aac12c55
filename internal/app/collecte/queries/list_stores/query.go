package list_stores

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

// Query lists the stores of a centre.
type Query struct {
	stores  contracts.StoreRepository
	centres contracts.CentreRepository
}

// NewQuery creates a new list stores query.
func NewQuery(stores contracts.StoreRepository, centres contracts.CentreRepository) *Query {
	return &Query{stores: stores, centres: centres}
}

// Execute returns the live stores of centreID by name.
func (q *Query) Execute(ctx context.Context, centreID string) ([]*contracts.StoreView, error) {
	if _, err := q.centres.GetByID(ctx, centreID); err != nil {
		return nil, err
	}
	stores, err := q.stores.ListByCentre(ctx, centreID)
	if err != nil {
		return nil, err
	}
	out := make([]*contracts.StoreView, 0, len(stores))
	for _, s := range stores {
		out = append(out, contracts.NewStoreView(s))
	}
	return out, nil
}
