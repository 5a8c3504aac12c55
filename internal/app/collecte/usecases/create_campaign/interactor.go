package create_campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request contains the data needed to create a campaign. Dates are raw
// client strings (RFC 3339 or YYYY-MM-DD); blank means unset.
type Request struct {
	Year           int
	Title          string
	Slug           string
	DefaultStartAt string
	DefaultEndAt   string
	GraceUntil     string
	LockedAt       string
}

// Interactor handles the create campaign use case.
type Interactor struct {
	repo  contracts.CampaignRepository
	clock clock.Clock
}

// NewInteractor creates a new create campaign interactor.
func NewInteractor(repo contracts.CampaignRepository, clock clock.Clock) *Interactor {
	return &Interactor{repo: repo, clock: clock}
}

// Execute creates the campaign and returns its view.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.CampaignView, error) {
	// 1. Parse inputs
	in := domain.CampaignInput{Year: req.Year, Title: req.Title, Slug: req.Slug}
	var err error
	if in.Schedule.StartAt, err = domain.ParseDate(req.DefaultStartAt); err != nil {
		return nil, err
	}
	if in.Schedule.EndAt, err = domain.ParseDate(req.DefaultEndAt); err != nil {
		return nil, err
	}
	if in.Schedule.GraceUntil, err = domain.ParseDate(req.GraceUntil); err != nil {
		return nil, err
	}
	if in.LockedAt, err = domain.ParseDate(req.LockedAt); err != nil {
		return nil, err
	}

	// 2. Friendly pre-check; storage enforces the same rule
	taken, err := i.repo.ExistsForYear(ctx, req.Year, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateYear
	}

	// 3. Build and persist
	now := i.clock.Now()
	campaign, err := domain.NewCampaign(uuid.New().String(), in, now)
	if err != nil {
		return nil, err
	}
	if err := i.repo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return contracts.NewCampaignView(campaign, now), nil
}
