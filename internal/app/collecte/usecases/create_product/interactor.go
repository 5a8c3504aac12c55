package create_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request contains the data needed to add a catalogue product.
type Request struct {
	Barcode   string
	Family    string
	SubFamily string
}

// Interactor handles the create product use case.
type Interactor struct {
	products contracts.ProductRepository
	clock    clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(products contracts.ProductRepository, clock clock.Clock) *Interactor {
	return &Interactor{products: products, clock: clock}
}

// Execute adds the product. Barcodes are unique across the catalogue.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.ProductView, error) {
	product, err := domain.NewProduct(uuid.New().String(), req.Barcode, req.Family, req.SubFamily, i.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := i.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return contracts.NewProductView(product), nil
}
