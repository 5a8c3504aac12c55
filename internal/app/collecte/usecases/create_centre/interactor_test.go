package create_centre

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestCreateCentre(t *testing.T) {
	ctx := context.Background()
	w := testutil.NewWorld(testutil.Day(2025, 1, 10))
	interactor := NewInteractor(w.Directory.Centres(), w.Clock)

	view, err := interactor.Execute(ctx, &Request{Name: "Banque Alimentaire 33", Email: "Contact@BA33.fr", ExternalRef: "BA33"})
	require.NoError(t, err)
	assert.Equal(t, "contact@ba33.fr", view.Email)

	t.Run("email is unique", func(t *testing.T) {
		_, err := interactor.Execute(ctx, &Request{Name: "Other", Email: "contact@ba33.fr"})
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("external ref is unique", func(t *testing.T) {
		_, err := interactor.Execute(ctx, &Request{Name: "Other", ExternalRef: "BA33"})
		assert.ErrorIs(t, err, domain.ErrDuplicateExternalRef)
	})

	t.Run("blank optional fields never conflict", func(t *testing.T) {
		_, err := interactor.Execute(ctx, &Request{Name: "A"})
		require.NoError(t, err)
		_, err = interactor.Execute(ctx, &Request{Name: "B"})
		assert.NoError(t, err)
	})
}
