package list_products

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Request contains pagination parameters. Page is 1-based.
type Request struct {
	Page  int
	Limit int
}

// Response is one page of the catalogue.
type Response struct {
	Items []*contracts.ProductView `json:"items"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

// Query handles the list products query.
type Query struct {
	products contracts.ProductRepository
}

// NewQuery creates a new list products query.
func NewQuery(products contracts.ProductRepository) *Query {
	return &Query{products: products}
}

// Execute retrieves a page of products ordered by family, sub-family and
// barcode.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	products, total, err := q.products.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	items := make([]*contracts.ProductView, 0, len(products))
	for _, p := range products {
		items = append(items, contracts.NewProductView(p))
	}
	return &Response{Items: items, Total: total, Page: page, Limit: limit}, nil
}
