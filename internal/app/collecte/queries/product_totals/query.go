package product_totals

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

// Request selects a campaign, optionally narrowed to one centre.
type Request struct {
	CampaignID string
	CentreID   string
}

// Query sums entry weights per product.
type Query struct {
	campaigns contracts.CampaignRepository
	entries   contracts.EntryRepository
}

// NewQuery creates a new product totals query.
func NewQuery(campaigns contracts.CampaignRepository, entries contracts.EntryRepository) *Query {
	return &Query{campaigns: campaigns, entries: entries}
}

// Execute returns one row per product with at least one entry.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductTotalView, error) {
	if _, err := q.campaigns.GetByID(ctx, req.CampaignID); err != nil {
		return nil, err
	}
	totals, err := q.entries.SumByProduct(ctx, contracts.EntryScope{CampaignID: req.CampaignID, CentreID: req.CentreID})
	if err != nil {
		return nil, err
	}
	out := make([]*contracts.ProductTotalView, 0, len(totals))
	for _, t := range totals {
		out = append(out, contracts.NewProductTotalView(t))
	}
	return out, nil
}
