package sqlrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_entry"
	"github.com/light-bringer/collecte-service/internal/models/m_product"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

type entryRow struct {
	EntryID    string    `db:"entry_id"`
	CampaignID string    `db:"campaign_id"`
	StoreID    string    `db:"store_id"`
	ProductID  string    `db:"product_id"`
	CentreID   string    `db:"centre_id"`
	Weight     float64   `db:"weight"`
	CreatedAt  time.Time `db:"created_at"`
}

type totalRow struct {
	ProductID   string  `db:"product_id"`
	Barcode     string  `db:"barcode"`
	Family      string  `db:"family"`
	SubFamily   string  `db:"sub_family"`
	TotalWeight float64 `db:"total_weight"`
	EntryCount  int64   `db:"entry_count"`
}

type ledgerRow struct {
	EntryID   string    `db:"entry_id"`
	ProductID string    `db:"product_id"`
	Weight    float64   `db:"weight"`
	CreatedAt time.Time `db:"created_at"`
	Barcode   string    `db:"barcode"`
	Family    string    `db:"family"`
	SubFamily string    `db:"sub_family"`
}

// EntryRepo implements EntryRepository on sqlx.
type EntryRepo struct {
	db *sqlx.DB
}

// NewEntryRepo creates a new EntryRepo.
func NewEntryRepo(db *sqlx.DB) *EntryRepo {
	return &EntryRepo{db: db}
}

var _ contracts.EntryRepository = (*EntryRepo)(nil)

// Create inserts the entry and its outbox event in one transaction.
func (r *EntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	row := entryRow{
		EntryID:    e.ID,
		CampaignID: e.CampaignID,
		StoreID:    e.StoreID,
		ProductID:  e.ProductID,
		CentreID:   e.CentreID,
		Weight:     e.Weight,
		CreatedAt:  e.CreatedAt.UTC(),
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := sqlx.NamedExecContext(ctx, tx, namedInsert(m_entry.TableName, m_entry.Columns), row); err != nil {
			return err
		}
		return insertEvents(ctx, tx, []domain.DomainEvent{e.RecordedEvent()}, e.CreatedAt)
	})
	if err != nil {
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
			"SUM(e."+m_entry.Weight+") AS total_weight",
			"COUNT(*) AS entry_count",
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

	var rows []totalRow
	if err := selectAll(ctx, r.db, &rows, b); err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}
	out := make([]*contracts.ProductTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, &contracts.ProductTotal{
			ProductID:   row.ProductID,
			Barcode:     row.Barcode,
			Family:      row.Family,
			SubFamily:   row.SubFamily,
			TotalWeight: row.TotalWeight,
			EntryCount:  row.EntryCount,
		})
	}
	return out, nil
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

	var rows []ledgerRow
	if err := selectAll(ctx, r.db, &rows, b); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	out := make([]*contracts.LedgerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, &contracts.LedgerRow{
			ID:        row.EntryID,
			ProductID: row.ProductID,
			Weight:    row.Weight,
			Date:      row.CreatedAt.UTC(),
			Barcode:   row.Barcode,
			Family:    row.Family,
			SubFamily: row.SubFamily,
		})
	}
	return out, nil
}

func entriesJoinProducts() string {
	return fmt.Sprintf("%s e JOIN %s p ON p.%s = e.%s",
		m_entry.TableName, m_product.TableName, m_product.ProductID, m_entry.ProductID)
}
