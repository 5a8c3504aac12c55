package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// CampaignSort names a sortable campaign attribute.
type CampaignSort string

const (
	SortByYear      CampaignSort = "year"
	SortByTitle     CampaignSort = "title"
	SortByCreatedAt CampaignSort = "created_at"
	SortByStartAt   CampaignSort = "default_start_at"
)

// ParseCampaignSort validates a client supplied sort key. Empty means year.
func ParseCampaignSort(s string) (CampaignSort, bool) {
	switch CampaignSort(s) {
	case "":
		return SortByYear, true
	case SortByYear, SortByTitle, SortByCreatedAt, SortByStartAt:
		return CampaignSort(s), true
	}
	return "", false
}

// CampaignFilter selects a page of non-deleted campaigns.
type CampaignFilter struct {
	Offset int
	Limit  int
	SortBy CampaignSort
	Desc   bool
}

// CampaignRepository persists campaigns. Writes carry the aggregate's
// pending domain events to the outbox in the same commit.
type CampaignRepository interface {
	// Create inserts a new campaign. A storage-level duplicate year among
	// non-deleted campaigns is reported as domain.ErrDuplicateYear.
	Create(ctx context.Context, c *domain.Campaign) error

	// Save writes the dirty fields of c.
	Save(ctx context.Context, c *domain.Campaign) error

	// GetByID returns a non-deleted campaign or domain.ErrCampaignNotFound.
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)

	// ExistsForYear reports whether a non-deleted campaign other than
	// excludeID holds year.
	ExistsForYear(ctx context.Context, year int, excludeID string) (bool, error)

	// List returns a page of non-deleted campaigns and the total count.
	List(ctx context.Context, f CampaignFilter) ([]*domain.Campaign, int64, error)

	// ListAll returns every campaign by year, newest first. Soft-deleted
	// rows are included only when includeDeleted is set (the refresher
	// sweep).
	ListAll(ctx context.Context, includeDeleted bool) ([]*domain.Campaign, error)

	// FindOpenAt returns non-deleted campaigns whose default window contains
	// at, newest year first.
	FindOpenAt(ctx context.Context, at time.Time) ([]*domain.Campaign, error)
}
