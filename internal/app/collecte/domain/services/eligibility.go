package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// EligibilityResolver decides which campaign a store may record data for.
// The campaign lookup and the enrollment lookup are separate reads and are
// not transactional; a link toggled between them is an accepted race.
type EligibilityResolver struct {
	campaigns   contracts.CampaignRepository
	enrollments contracts.EnrollmentRepository
}

// NewEligibilityResolver creates a new EligibilityResolver.
func NewEligibilityResolver(campaigns contracts.CampaignRepository, enrollments contracts.EnrollmentRepository) *EligibilityResolver {
	return &EligibilityResolver{campaigns: campaigns, enrollments: enrollments}
}

// OpenCampaign returns the campaign open at at. Candidates come from the
// window lookup and are kept only if their recomputed status is ACTIVE; the
// stored status cache is never trusted. When several qualify the most
// recent year wins.
func (r *EligibilityResolver) OpenCampaign(ctx context.Context, at time.Time) (*domain.Campaign, error) {
	candidates, err := r.campaigns.FindOpenAt(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open campaigns: %w", err)
	}
	return PickOpen(candidates, at)
}

// Resolve returns the open campaign the store is enabled for at at.
func (r *EligibilityResolver) Resolve(ctx context.Context, storeID string, at time.Time) (*domain.Campaign, error) {
	campaign, err := r.OpenCampaign(ctx, at)
	if err != nil {
		return nil, err
	}

	_, err = r.enrollments.FindEnabled(ctx, campaign.ID(), storeID)
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, domain.ErrStoreNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up enrollment: %w", err)
	}
	return campaign, nil
}

// PickOpen selects the ACTIVE campaign with the highest year among
// candidates.
func PickOpen(candidates []*domain.Campaign, at time.Time) (*domain.Campaign, error) {
	var best *domain.Campaign
	for _, c := range candidates {
		if c.StatusAt(at) != domain.StatusActive {
			continue
		}
		if best == nil || c.Year() > best.Year() {
			best = c
		}
	}
	if best == nil {
		return nil, domain.ErrNoOpenCampaign
	}
	return best, nil
}
