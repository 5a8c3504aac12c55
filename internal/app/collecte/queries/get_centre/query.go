package get_centre

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

// Query retrieves a centre.
type Query struct {
	centres contracts.CentreRepository
}

// NewQuery creates a new get centre query.
func NewQuery(centres contracts.CentreRepository) *Query {
	return &Query{centres: centres}
}

// Execute retrieves a centre by ID.
func (q *Query) Execute(ctx context.Context, centreID string) (*contracts.CentreView, error) {
	c, err := q.centres.GetByID(ctx, centreID)
	if err != nil {
		return nil, err
	}
	return contracts.NewCentreView(c), nil
}
