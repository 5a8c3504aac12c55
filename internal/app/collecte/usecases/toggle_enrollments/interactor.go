package toggle_enrollments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Request lists the stores whose link to CampaignID is set to Enabled.
type Request struct {
	CampaignID string
	StoreIDs   []string
	Enabled    bool
}

// Interactor handles the toggle enrollments use case.
type Interactor struct {
	campaigns   contracts.CampaignRepository
	enrollments contracts.EnrollmentRepository
	stores      contracts.StoreRepository
	clock       clock.Clock
}

// NewInteractor creates a new toggle enrollments interactor.
func NewInteractor(
	campaigns contracts.CampaignRepository,
	enrollments contracts.EnrollmentRepository,
	stores contracts.StoreRepository,
	clock clock.Clock,
) *Interactor {
	return &Interactor{campaigns: campaigns, enrollments: enrollments, stores: stores, clock: clock}
}

// Execute upserts one link per store: created when absent, flipped
// otherwise. Links are written one by one; a failure stops the batch and
// the links already written stay.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*contracts.EnrollmentView, error) {
	storeIDs := dedupe(req.StoreIDs)
	if len(storeIDs) == 0 {
		return nil, domain.ErrEmptyStoreList
	}

	// 1. The campaign must be live
	if _, err := i.campaigns.GetByID(ctx, req.CampaignID); err != nil {
		return nil, err
	}

	// 2. Every store must exist before anything is written
	for _, id := range storeIDs {
		if _, err := i.stores.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}

	// 3. Upsert
	now := i.clock.Now()
	views := make([]*contracts.EnrollmentView, 0, len(storeIDs))
	for _, id := range storeIDs {
		e, err := i.upsert(ctx, req.CampaignID, id, req.Enabled, now)
		if err != nil {
			return nil, err
		}
		views = append(views, contracts.NewEnrollmentView(e))
	}
	return views, nil
}

func (i *Interactor) upsert(ctx context.Context, campaignID, storeID string, enabled bool, now time.Time) (*domain.Enrollment, error) {
	existing, err := i.enrollments.Get(ctx, campaignID, storeID)
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		e := domain.NewEnrollment(uuid.New().String(), campaignID, storeID, enabled, now)
		if err := i.enrollments.Create(ctx, e); err != nil {
			return nil, fmt.Errorf("failed to enroll store %s: %w", storeID, err)
		}
		return e, nil
	}
	if err != nil {
		return nil, err
	}
	defer existing.ClearEvents()

	if !existing.SetEnabled(enabled, now) {
		return existing, nil
	}
	if err := i.enrollments.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to toggle store %s: %w", storeID, err)
	}
	return existing, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
