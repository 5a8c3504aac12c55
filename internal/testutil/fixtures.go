package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain/services"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

// Day returns midnight UTC of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to t.
func Ptr(t time.Time) *time.Time { return &t }

// World wires every fake repository around one mock clock.
type World struct {
	Clock       *clock.MockClock
	Campaigns   *CampaignRepo
	Enrollments *EnrollmentRepo
	Directory   *Directory
	Entries     *EntryRepo
}

// NewWorld creates an empty world frozen at now.
func NewWorld(now time.Time) *World {
	enrollments := NewEnrollmentRepo()
	dir := NewDirectory(enrollments)
	return &World{
		Clock:       clock.NewMockClock(now),
		Campaigns:   NewCampaignRepo(),
		Enrollments: enrollments,
		Directory:   dir,
		Entries:     NewEntryRepo(dir.Products()),
	}
}

// Resolver returns an eligibility resolver over the world's repositories.
func (w *World) Resolver() *services.EligibilityResolver {
	return services.NewEligibilityResolver(w.Campaigns, w.Enrollments)
}

// SeedCentre stores a centre.
func (w *World) SeedCentre(t *testing.T, id string) *domain.Centre {
	t.Helper()
	c, err := domain.NewCentre(id, "Centre "+id, "1 rue "+id, "", "", "", w.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, w.Directory.Centres().Create(context.Background(), c))
	return c
}

// SeedStore stores a store of centreID.
func (w *World) SeedStore(t *testing.T, id, centreID string) *domain.Store {
	t.Helper()
	s, err := domain.NewStore(id, centreID, "Magasin "+id, "2 avenue "+id, "", "", "", w.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, w.Directory.Stores().Create(context.Background(), s))
	return s
}

// SeedProduct stores a product.
func (w *World) SeedProduct(t *testing.T, id, barcode string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, barcode, "Epicerie", "Conserves", w.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, w.Directory.Products().Create(context.Background(), p))
	return p
}

// SeedCampaign stores a campaign with the given window.
func (w *World) SeedCampaign(t *testing.T, id string, year int, start, end time.Time, grace *time.Time) *domain.Campaign {
	t.Helper()
	c, err := domain.NewCampaign(id, domain.CampaignInput{
		Year:     year,
		Schedule: domain.Schedule{StartAt: Ptr(start), EndAt: Ptr(end), GraceUntil: grace},
	}, w.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, w.Campaigns.Create(context.Background(), c))
	return c
}

// Enroll links a store to a campaign.
func (w *World) Enroll(t *testing.T, campaignID, storeID string, enabled bool) {
	t.Helper()
	e := domain.NewEnrollment(campaignID+"-"+storeID, campaignID, storeID, enabled, w.Clock.Now())
	require.NoError(t, w.Enrollments.Create(context.Background(), e))
}
