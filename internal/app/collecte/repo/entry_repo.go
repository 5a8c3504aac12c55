package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_entry"
	"github.com/light-bringer/collecte-service/internal/models/m_outbox"
	"github.com/light-bringer/collecte-service/internal/models/m_product"
	"github.com/light-bringer/collecte-service/internal/pkg/committer"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// EntryRepo implements EntryRepository for Spanner.
type EntryRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_entry.Model
	outbox    *m_outbox.Model
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(client *spanner.Client, c *committer.Committer) *EntryRepo {
	return &EntryRepo{
		client:    client,
		committer: c,
		model:     m_entry.NewModel(),
		outbox:    m_outbox.NewModel(),
	}
}

var _ contracts.EntryRepository = (*EntryRepo)(nil)

// Create inserts the entry and its outbox event in one commit.
func (r *EntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(&m_entry.Data{
		EntryID:    e.ID,
		CampaignID: e.CampaignID,
		StoreID:    e.StoreID,
		ProductID:  e.ProductID,
		CentreID:   e.CentreID,
		Weight:     e.Weight,
		CreatedAt:  e.CreatedAt,
	}))

	events, err := outboxMutations(r.outbox, []domain.DomainEvent{e.RecordedEvent()}, e.CreatedAt)
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// SumByProduct groups a campaign's entries by product.
func (r *EntryRepo) SumByProduct(ctx context.Context, scope contracts.EntryScope) ([]*contracts.ProductTotal, error) {
	b := query.From(entriesJoinProducts()).
		Select(
			"e."+m_entry.ProductID,
			"p."+m_product.Barcode,
			"p."+m_product.Family,
			"p."+m_product.SubFamily,
			"SUM(e."+m_entry.Weight+")",
			"COUNT(*)",
		).
		Where(query.Eq("e."+m_entry.CampaignID, scope.CampaignID))
	if scope.CentreID != "" {
		b = b.Where(query.Eq("e."+m_entry.CentreID, scope.CentreID))
	}
	b = b.GroupBy(
		"e."+m_entry.ProductID,
		"p."+m_product.Barcode,
		"p."+m_product.Family,
		"p."+m_product.SubFamily,
	).OrderBy("p."+m_product.Barcode, query.Asc)

	totals, err := queryAll(ctx, r.client.Single(), b.Build(), func(row *spanner.Row) (*contracts.ProductTotal, error) {
		var t contracts.ProductTotal
		if err := row.Columns(&t.ProductID, &t.Barcode, &t.Family, &t.SubFamily, &t.TotalWeight, &t.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to parse product total: %w", err)
		}
		return &t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}
	return totals, nil
}

// Ledger returns the entries of a campaign and store, newest first.
func (r *EntryRepo) Ledger(ctx context.Context, scope contracts.EntryScope) ([]*contracts.LedgerRow, error) {
	b := query.From(entriesJoinProducts()).
		Select(
			"e."+m_entry.EntryID,
			"e."+m_entry.ProductID,
			"e."+m_entry.Weight,
			"e."+m_entry.CreatedAt,
			"p."+m_product.Barcode,
			"p."+m_product.Family,
			"p."+m_product.SubFamily,
		).
		Where(query.Eq("e."+m_entry.CampaignID, scope.CampaignID)).
		Where(query.Eq("e."+m_entry.StoreID, scope.StoreID))
	if scope.CentreID != "" {
		b = b.Where(query.Eq("e."+m_entry.CentreID, scope.CentreID))
	}
	b = b.OrderBy("e."+m_entry.CreatedAt, query.Desc).
		OrderBy("e."+m_entry.EntryID, query.Desc)

	rows, err := queryAll(ctx, r.client.Single(), b.Build(), func(row *spanner.Row) (*contracts.LedgerRow, error) {
		var l contracts.LedgerRow
		if err := row.Columns(&l.ID, &l.ProductID, &l.Weight, &l.Date, &l.Barcode, &l.Family, &l.SubFamily); err != nil {
			return nil, fmt.Errorf("failed to parse ledger row: %w", err)
		}
		l.Date = l.Date.UTC()
		return &l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return rows, nil
}

func entriesJoinProducts() string {
	return fmt.Sprintf("%s e JOIN %s p ON p.%s = e.%s",
		m_entry.TableName, m_product.TableName, m_product.ProductID, m_entry.ProductID)
}
