package create_store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request contains the data needed to create a store.
type Request struct {
	CentreID    string
	Name        string
	Address     string
	Phone       string
	Email       string
	ExternalRef string
}

// Interactor handles the create store use case.
type Interactor struct {
	stores  contracts.StoreRepository
	centres contracts.CentreRepository
	clock   clock.Clock
}

// NewInteractor creates a new create store interactor.
func NewInteractor(stores contracts.StoreRepository, centres contracts.CentreRepository, clock clock.Clock) *Interactor {
	return &Interactor{stores: stores, centres: centres, clock: clock}
}

// Execute creates the store under an existing centre.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.StoreView, error) {
	if _, err := i.centres.GetByID(ctx, req.CentreID); err != nil {
		return nil, err
	}

	store, err := domain.NewStore(uuid.New().String(), req.CentreID, req.Name, req.Address, req.Phone, req.Email, req.ExternalRef, i.clock.Now())
	if err != nil {
		return nil, err
	}

	taken, err := i.stores.ExistsAddress(ctx, store.CentreID, store.Address, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateAddress
	}

	if err := i.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return contracts.NewStoreView(store), nil
}
