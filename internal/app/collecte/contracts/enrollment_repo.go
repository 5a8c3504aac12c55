package contracts

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// EnrollmentRepository persists campaign-store links.
type EnrollmentRepository interface {
	// Get returns the link or domain.ErrEnrollmentNotFound.
	Get(ctx context.Context, campaignID, storeID string) (*domain.Enrollment, error)

	// FindEnabled returns the link only when enabled, otherwise
	// domain.ErrEnrollmentNotFound.
	FindEnabled(ctx context.Context, campaignID, storeID string) (*domain.Enrollment, error)

	// Create inserts a link. A duplicate (campaign, store) is reported as
	// domain.ErrDuplicateEnrollment.
	Create(ctx context.Context, e *domain.Enrollment) error

	// Save writes the dirty fields of e.
	Save(ctx context.Context, e *domain.Enrollment) error

	// ListByCampaign returns every link of a campaign.
	ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Enrollment, error)
}
