package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "12 rue des Lilas", NormalizeAddress("  12   rue\tdes  Lilas \n"))
	assert.Equal(t, "", NormalizeAddress("   "))
}

func TestNewStore(t *testing.T) {
	now := day(2025, 1, 1)

	s, err := NewStore("s1", "ct1", " Carrefour ", " 1  place  du Marché ", "", " Shop@Example.com ", "", now)
	require.NoError(t, err)
	assert.Equal(t, "Carrefour", s.Name)
	assert.Equal(t, "1 place du Marché", s.Address)
	assert.Equal(t, "shop@example.com", s.Email)
	assert.True(t, s.BelongsTo("ct1"))
	assert.False(t, s.BelongsTo("ct2"))

	_, err = NewStore("s1", "ct1", "", "addr", "", "", "", now)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewStore("s1", "ct1", "name", "  ", "", "", "", now)
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestNewProduct(t *testing.T) {
	now := day(2025, 1, 1)

	p, err := NewProduct("p1", "3017620422003", "PROTIDIQUE", "CONSERVE_VIANDE", now)
	require.NoError(t, err)
	assert.Equal(t, "3017620422003", p.Barcode)

	_, err = NewProduct("p1", "123456789012345", "A", "B", now)
	assert.ErrorIs(t, err, ErrInvalidBarcode)

	_, err = NewProduct("p1", "1", strings.Repeat("F", 33), "B", now)
	assert.ErrorIs(t, err, ErrInvalidFamily)
}

func TestNewEntry(t *testing.T) {
	now := day(2025, 3, 10)

	e, err := NewEntry("e1", "c1", "s1", "p1", "ct1", 2.5, now)
	require.NoError(t, err)
	assert.Equal(t, 2.5, e.Weight)
	assert.Equal(t, EventEntryRecorded, e.RecordedEvent().EventType())

	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewEntry("e1", "c1", "s1", "p1", "ct1", w, now)
		assert.ErrorIs(t, err, ErrInvalidWeight)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 1), *d)

	d, err = ParseDate("2025-03-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 1).Add(8*time.Hour), *d)

	d, err = ParseDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("01/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrNotFound, KindOf(ErrCampaignNotFound))
	assert.Equal(t, ErrConflict, KindOf(ErrDuplicateYear))
	assert.Equal(t, ErrDomainState, KindOf(ErrNoOpenCampaign))
	assert.Equal(t, ErrDomainState, KindOf(ErrStoreNotEnrolled))
	assert.NotEqual(t, ErrNoOpenCampaign, ErrStoreNotEnrolled)
	assert.Nil(t, KindOf(errors.New("connection reset")))
}
