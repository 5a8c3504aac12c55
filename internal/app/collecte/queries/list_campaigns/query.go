package list_campaigns

import (
	"context"
	"fmt"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidSort is returned for an unknown sort column.
var ErrInvalidSort = fmt.Errorf("%w: unknown sort column", domain.ErrInvalid)

// Request contains pagination and ordering. Page is 1-based; zero values
// take the defaults.
type Request struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

// Query handles the paginated campaign listing.
type Query struct {
	repo  contracts.CampaignRepository
	clock clock.Clock
}

// NewQuery creates a new list campaigns query.
func NewQuery(repo contracts.CampaignRepository, clock clock.Clock) *Query {
	return &Query{repo: repo, clock: clock}
}

// Execute returns one page of non-deleted campaigns. Ordering defaults to
// year DESC.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.CampaignPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortBy, ok := contracts.ParseCampaignSort(req.SortBy)
	if !ok {
		return nil, ErrInvalidSort
	}

	campaigns, total, err := q.repo.List(ctx, contracts.CampaignFilter{
		Offset: (page - 1) * limit,
		Limit:  limit,
		SortBy: sortBy,
		Desc:   query.ParseDirection(req.Order, query.Desc) == query.Desc,
	})
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	items := make([]*contracts.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, contracts.NewCampaignView(c, now))
	}
	return &contracts.CampaignPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}
