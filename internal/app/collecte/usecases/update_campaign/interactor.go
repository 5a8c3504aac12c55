package update_campaign

import (
	"context"
	"fmt"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request contains the data to update a campaign.
type Request struct {
	CampaignID     string
	Year           *int    // nil = no change
	Title          *string // nil = no change
	Slug           *string // nil = no change
	DefaultStartAt *string // nil = no change
	DefaultEndAt   *string // nil = no change
	GraceUntil     *string // nil = no change
	LockedAt       *string // nil = no change
}

// Interactor handles the update campaign use case.
type Interactor struct {
	repo  contracts.CampaignRepository
	clock clock.Clock
}

// NewInteractor creates a new update campaign interactor.
func NewInteractor(repo contracts.CampaignRepository, clock clock.Clock) *Interactor {
	return &Interactor{repo: repo, clock: clock}
}

// Execute merges the request into the campaign and returns its view.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.CampaignView, error) {
	// 1. Load aggregate
	campaign, err := i.repo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	defer campaign.ClearEvents()

	// 2. Parse the patch
	patch := domain.CampaignPatch{Year: req.Year, Title: req.Title, Slug: req.Slug}
	if patch.StartAt, err = domain.ParseOptionalDate(req.DefaultStartAt); err != nil {
		return nil, err
	}
	if patch.EndAt, err = domain.ParseOptionalDate(req.DefaultEndAt); err != nil {
		return nil, err
	}
	if patch.GraceUntil, err = domain.ParseOptionalDate(req.GraceUntil); err != nil {
		return nil, err
	}
	if patch.LockedAt, err = domain.ParseOptionalDate(req.LockedAt); err != nil {
		return nil, err
	}

	// 3. Apply and re-check the year when it moves
	now := i.clock.Now()
	changed, err := campaign.Apply(patch, now)
	if err != nil {
		return nil, err
	}
	if campaign.Changes().Dirty(domain.FieldYear) {
		taken, err := i.repo.ExistsForYear(ctx, campaign.Year(), campaign.ID())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateYear
		}
	}

	// 4. Persist
	if changed {
		if err := i.repo.Save(ctx, campaign); err != nil {
			return nil, fmt.Errorf("failed to update campaign: %w", err)
		}
	}

	return contracts.NewCampaignView(campaign, now), nil
}
