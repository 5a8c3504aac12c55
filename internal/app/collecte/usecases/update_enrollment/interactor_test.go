package update_enrollment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestUpdateEnrollment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*testutil.World, *Interactor) {
		w := testutil.NewWorld(testutil.Day(2025, 3, 20))
		w.Enroll(t, "c2025", "s1", true)
		return w, NewInteractor(w.Enrollments, w.Clock)
	}

	t.Run("window override", func(t *testing.T) {
		_, interactor := setup(t)
		view, err := interactor.Execute(ctx, &Request{
			CampaignID: "c2025",
			StoreID:    "s1",
			Window:     &Window{StartAt: "2025-03-05", EndAt: "2025-03-25"},
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-05T00:00:00.000Z", *view.StartAt)
		assert.Equal(t, "2025-03-25T00:00:00.000Z", *view.EndAt)
		assert.Nil(t, view.GraceUntil)
	})

	t.Run("inverted override", func(t *testing.T) {
		_, interactor := setup(t)
		_, err := interactor.Execute(ctx, &Request{
			CampaignID: "c2025",
			StoreID:    "s1",
			Window:     &Window{StartAt: "2025-03-25", EndAt: "2025-03-05"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEnrollmentWindow)
	})

	t.Run("validate once", func(t *testing.T) {
		w, interactor := setup(t)
		view, err := interactor.Execute(ctx, &Request{CampaignID: "c2025", StoreID: "s1", Validate: true})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-20T00:00:00.000Z", *view.ValidatedAt)
		assert.Contains(t, w.Enrollments.Types(), domain.EventEnrollmentValidated)

		_, err = interactor.Execute(ctx, &Request{CampaignID: "c2025", StoreID: "s1", Validate: true})
		assert.ErrorIs(t, err, domain.ErrEnrollmentValidated)
	})

	t.Run("missing link", func(t *testing.T) {
		_, interactor := setup(t)
		_, err := interactor.Execute(ctx, &Request{CampaignID: "c2025", StoreID: "s9"})
		assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)
	})
}
