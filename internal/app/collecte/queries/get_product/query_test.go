package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	w := testutil.NewWorld(testutil.Day(2025, 3, 10))
	w.SeedProduct(t, "A", "3017620422003")
	q := NewQuery(w.Directory.Products())

	byID, err := q.Execute(ctx, &Request{ProductID: "A"})
	require.NoError(t, err)
	assert.Equal(t, "3017620422003", byID.Barcode)

	byCode, err := q.Execute(ctx, &Request{Barcode: "3017620422003"})
	require.NoError(t, err)
	assert.Equal(t, "A", byCode.ID)

	_, err = q.Execute(ctx, &Request{Barcode: "000"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = q.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
