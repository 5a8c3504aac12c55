package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// EntryScope narrows entry reads. CentreID is optional; when set only the
// entries recorded for that centre are considered.
type EntryScope struct {
	CampaignID string
	StoreID    string
	CentreID   string
}

// ProductTotal is the summed weight of one product over a campaign.
type ProductTotal struct {
	ProductID   string
	Barcode     string
	Family      string
	SubFamily   string
	TotalWeight float64
	EntryCount  int64
}

// LedgerRow is one weight entry joined with its product.
type LedgerRow struct {
	ID        string
	ProductID string
	Weight    float64
	Date      time.Time
	Barcode   string
	Family    string
	SubFamily string
}

// EntryRepository persists append-only weight entries.
type EntryRepository interface {
	// Create inserts the entry together with its outbox event.
	Create(ctx context.Context, e *domain.Entry) error

	// SumByProduct groups a campaign's entries by product. StoreID in the
	// scope is ignored. Products without entries are absent.
	SumByProduct(ctx context.Context, scope EntryScope) ([]*ProductTotal, error)

	// Ledger returns the entries of a campaign and store, newest first.
	Ledger(ctx context.Context, scope EntryScope) ([]*LedgerRow, error)
}
