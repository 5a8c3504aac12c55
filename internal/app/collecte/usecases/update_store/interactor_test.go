package update_store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestUpdateStore(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*testutil.World, *Interactor) {
		w := testutil.NewWorld(testutil.Day(2025, 1, 10))
		w.SeedCentre(t, "centre-1")
		w.SeedStore(t, "s1", "centre-1")
		w.SeedStore(t, "s2", "centre-1")
		return w, NewInteractor(w.Directory.Stores(), w.Clock)
	}

	t.Run("partial update", func(t *testing.T) {
		w, interactor := setup(t)
		w.Clock.Advance(testutil.Day(2025, 1, 11).Sub(w.Clock.Now()))

		view, err := interactor.Execute(ctx, &Request{StoreID: "s1", Phone: strPtr(" 0102030405 "), Email: strPtr("Shop@Example.org")})
		require.NoError(t, err)
		assert.Equal(t, "0102030405", view.Phone)
		assert.Equal(t, "shop@example.org", view.Email)
		assert.Equal(t, "Magasin s1", view.Name)
		assert.Equal(t, "2025-01-11T00:00:00.000Z", view.UpdatedAt)
	})

	t.Run("address taken by a sibling", func(t *testing.T) {
		_, interactor := setup(t)
		_, err := interactor.Execute(ctx, &Request{StoreID: "s1", Address: strPtr("2 avenue s2")})
		assert.ErrorIs(t, err, domain.ErrDuplicateAddress)
	})

	t.Run("own address is not a conflict", func(t *testing.T) {
		_, interactor := setup(t)
		_, err := interactor.Execute(ctx, &Request{StoreID: "s1", Address: strPtr(" 2 avenue  s1 ")})
		assert.NoError(t, err)
	})

	t.Run("blank name", func(t *testing.T) {
		_, interactor := setup(t)
		_, err := interactor.Execute(ctx, &Request{StoreID: "s1", Name: strPtr("  ")})
		assert.ErrorIs(t, err, domain.ErrEmptyName)
	})

	t.Run("unknown store", func(t *testing.T) {
		_, interactor := setup(t)
		_, err := interactor.Execute(ctx, &Request{StoreID: "nope"})
		assert.ErrorIs(t, err, domain.ErrStoreNotFound)
	})
}
