package store_products

import (
	"context"
	"sort"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

// Request selects a campaign and store, optionally narrowed to one centre.
type Request struct {
	CampaignID string
	StoreID    string
	CentreID   string
}

// Query lists a store's entries grouped by product: one row per entry,
// ordered by barcode then newest first.
type Query struct {
	entries contracts.EntryRepository
}

// NewQuery creates a new store products query.
func NewQuery(entries contracts.EntryRepository) *Query {
	return &Query{entries: entries}
}

// Execute runs the query.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.LedgerRowView, error) {
	rows, err := q.entries.Ledger(ctx, contracts.EntryScope{
		CampaignID: req.CampaignID,
		StoreID:    req.StoreID,
		CentreID:   req.CentreID,
	})
	if err != nil {
		return nil, err
	}

	// Ledger is newest first; a stable sort keeps that inside a product.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Barcode < rows[j].Barcode })

	out := make([]*contracts.LedgerRowView, 0, len(rows))
	for _, r := range rows {
		out = append(out, contracts.NewLedgerRowView(r))
	}
	return out, nil
}
