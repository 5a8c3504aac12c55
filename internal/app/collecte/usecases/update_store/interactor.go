package update_store

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request is a partial store update. Nil fields keep their value.
type Request struct {
	StoreID     string
	Name        *string
	Address     *string
	Phone       *string
	Email       *string
	ExternalRef *string
}

// Interactor handles the update store use case.
type Interactor struct {
	stores contracts.StoreRepository
	clock  clock.Clock
}

// NewInteractor creates a new update store interactor.
func NewInteractor(stores contracts.StoreRepository, clock clock.Clock) *Interactor {
	return &Interactor{stores: stores, clock: clock}
}

// Execute merges the request into the store. A changed address is checked
// against the other stores of the centre.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.StoreView, error) {
	store, err := i.stores.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	changed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrEmptyName
		}
		changed = changed || name != store.Name
		store.Name = name
	}
	addressChanged := false
	if req.Address != nil {
		address := domain.NormalizeAddress(*req.Address)
		if address == "" {
			return nil, domain.ErrEmptyAddress
		}
		addressChanged = address != store.Address
		store.Address = address
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		changed = changed || phone != store.Phone
		store.Phone = phone
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		changed = changed || email != store.Email
		store.Email = email
	}
	if req.ExternalRef != nil {
		ref := strings.TrimSpace(*req.ExternalRef)
		changed = changed || ref != store.ExternalRef
		store.ExternalRef = ref
	}

	if !changed && !addressChanged {
		return contracts.NewStoreView(store), nil
	}

	if addressChanged {
		taken, err := i.stores.ExistsAddress(ctx, store.CentreID, store.Address, store.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateAddress
		}
	}

	store.UpdatedAt = i.clock.Now()
	if err := i.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return contracts.NewStoreView(store), nil
}
