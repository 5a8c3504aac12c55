package get_store

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

// Query retrieves a store.
type Query struct {
	stores contracts.StoreRepository
}

// NewQuery creates a new get store query.
func NewQuery(stores contracts.StoreRepository) *Query {
	return &Query{stores: stores}
}

// Execute retrieves a non-deleted store by ID.
func (q *Query) Execute(ctx context.Context, storeID string) (*contracts.StoreView, error) {
	s, err := q.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return contracts.NewStoreView(s), nil
}
