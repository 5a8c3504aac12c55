package delete_campaign

import (
	"context"
	"fmt"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request identifies the campaign to soft delete.
type Request struct {
	CampaignID string
}

// Interactor handles the soft delete campaign use case. The row stays and
// its year becomes available again.
type Interactor struct {
	repo  contracts.CampaignRepository
	clock clock.Clock
}

// NewInteractor creates a new delete campaign interactor.
func NewInteractor(repo contracts.CampaignRepository, clock clock.Clock) *Interactor {
	return &Interactor{repo: repo, clock: clock}
}

// Execute soft deletes the campaign.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	campaign, err := i.repo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return err
	}
	defer campaign.ClearEvents()

	if err := campaign.MarkDeleted(i.clock.Now()); err != nil {
		return err
	}
	if err := i.repo.Save(ctx, campaign); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}
