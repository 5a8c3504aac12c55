package entry_ledger

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
)

// Request selects a campaign and store, optionally narrowed to one centre.
type Request struct {
	CampaignID string
	StoreID    string
	CentreID   string
}

// Query returns the line-by-line ledger of a store, newest first.
type Query struct {
	entries contracts.EntryRepository
}

// NewQuery creates a new entry ledger query.
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
	out := make([]*contracts.LedgerRowView, 0, len(rows))
	for _, r := range rows {
		out = append(out, contracts.NewLedgerRowView(r))
	}
	return out, nil
}
