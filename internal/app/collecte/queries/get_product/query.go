package get_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// ErrMissingKey is returned when neither an ID nor a barcode is given.
var ErrMissingKey = fmt.Errorf("%w: product id or barcode required", domain.ErrInvalid)

// Request looks a product up by ID or, when ID is empty, by barcode.
type Request struct {
	ProductID string
	Barcode   string
}

// Query retrieves a catalogue product.
type Query struct {
	products contracts.ProductRepository
}

// NewQuery creates a new get product query.
func NewQuery(products contracts.ProductRepository) *Query {
	return &Query{products: products}
}

// Execute retrieves a product or domain.ErrProductNotFound.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductView, error) {
	var (
		p   *domain.Product
		err error
	)
	switch {
	case req.ProductID != "":
		p, err = q.products.GetByID(ctx, req.ProductID)
	case req.Barcode != "":
		p, err = q.products.GetByBarcode(ctx, req.Barcode)
	default:
		return nil, ErrMissingKey
	}
	if err != nil {
		return nil, err
	}
	return contracts.NewProductView(p), nil
}
