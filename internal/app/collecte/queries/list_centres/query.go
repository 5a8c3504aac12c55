package list_centres

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

// Query lists every centre.
type Query struct {
	centres contracts.CentreRepository
}

// NewQuery creates a new list centres query.
func NewQuery(centres contracts.CentreRepository) *Query {
	return &Query{centres: centres}
}

func (q *Query) Execute(ctx context.Context) ([]*contracts.CentreView, error) {
	centres, err := q.centres.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*contracts.CentreView, 0, len(centres))
	for _, c := range centres {
		out = append(out, contracts.NewCentreView(c))
	}
	return out, nil
}
