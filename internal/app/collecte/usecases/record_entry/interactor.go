package record_entry

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain/services"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request contains the data needed to record a weight entry.
type Request struct {
	StoreID        string
	ProductID      string
	Weight         float64
	ActingCentreID string
}

// Interactor handles the record entry use case.
type Interactor struct {
	stores   contracts.StoreRepository
	products contracts.ProductRepository
	entries  contracts.EntryRepository
	resolver *services.EligibilityResolver
	clock    clock.Clock
}

// NewInteractor creates a new record entry interactor.
func NewInteractor(
	stores contracts.StoreRepository,
	products contracts.ProductRepository,
	entries contracts.EntryRepository,
	resolver *services.EligibilityResolver,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		stores:   stores,
		products: products,
		entries:  entries,
		resolver: resolver,
		clock:    clock,
	}
}

// Execute appends one weight entry for the store's open campaign. Nothing
// is written unless every check passes.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.EntryView, error) {
	// 1. Ownership. An unknown store is reported the same way so callers
	// cannot discover other centres' stores.
	store, err := i.stores.GetByID(ctx, req.StoreID)
	if err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
		return nil, err
	}
	if store == nil || !store.BelongsTo(req.ActingCentreID) {
		return nil, domain.ErrStoreForbidden
	}

	// 2. Eligibility, errors propagate unchanged
	now := i.clock.Now()
	campaign, err := i.resolver.Resolve(ctx, store.ID, now)
	if err != nil {
		return nil, err
	}

	// 3. Product
	if _, err := i.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	// 4. Append
	entry, err := domain.NewEntry(uuid.New().String(), campaign.ID(), store.ID, req.ProductID, store.CentreID, req.Weight, now)
	if err != nil {
		return nil, err
	}
	if err := i.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record entry: %w", err)
	}

	log.Printf("[ENTRY] recorded id=%s campaign=%s store=%s product=%s weight=%.3f", entry.ID, entry.CampaignID, entry.StoreID, entry.ProductID, entry.Weight)
	return contracts.NewEntryView(entry), nil
}
