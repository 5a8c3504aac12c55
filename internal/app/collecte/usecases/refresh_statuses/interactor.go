package refresh_statuses

import (
	"context"
	"fmt"
	"log"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request tunes a sweep.
type Request struct {
	// DryRun computes the changes without writing them.
	DryRun bool
}

// Response summarises a sweep.
type Response struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// Interactor recomputes every campaign's status, soft-deleted ones included,
// and writes back only the rows whose cached status changed.
//
// The sweep is best effort: a row that fails to save is logged and counted
// and the sweep moves on. Running it twice at the same instant updates
// nothing the second time.
type Interactor struct {
	repo  contracts.CampaignRepository
	clock clock.Clock
}

// NewInteractor creates a new refresh statuses interactor.
func NewInteractor(repo contracts.CampaignRepository, clock clock.Clock) *Interactor {
	return &Interactor{repo: repo, clock: clock}
}

// Execute runs one sweep. Only the initial listing can fail the whole run.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	campaigns, err := i.repo.ListAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}

	now := i.clock.Now()
	resp := &Response{Scanned: len(campaigns)}

	for _, c := range campaigns {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		previous := c.StoredStatus()
		status, changed := c.Refresh(now)
		if !changed {
			continue
		}
		if req.DryRun {
			log.Printf("[REFRESH] dry-run campaign=%s year=%d %s -> %s", c.ID(), c.Year(), previous, status)
			resp.Updated++
			continue
		}

		if err := i.repo.Save(ctx, c); err != nil {
			log.Printf("[REFRESH] campaign=%s failed: %v", c.ID(), err)
			resp.Failed++
			continue
		}
		resp.Updated++
	}

	return resp, nil
}
