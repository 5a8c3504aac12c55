package sqlrepo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "collecte.db"), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func newCampaign(t *testing.T, id string, year int, start, end, grace *time.Time, now time.Time) *domain.Campaign {
	t.Helper()
	c, err := domain.NewCampaign(id, domain.CampaignInput{
		Year:     year,
		Schedule: domain.Schedule{StartAt: start, EndAt: end, GraceUntil: grace},
	}, now)
	require.NoError(t, err)
	return c
}

func seedDirectory(t *testing.T, db *sqlx.DB, now time.Time) (*domain.Centre, *domain.Store) {
	t.Helper()
	ctx := context.Background()

	centre, err := domain.NewCentre("centre-1", "Centre Nord", "1 rue A", "", "nord@example.org", "", now)
	require.NoError(t, err)
	require.NoError(t, NewCentreRepo(db).Create(ctx, centre))

	store, err := domain.NewStore("store-1", centre.ID, "Super U", "12  avenue   B", "", "", "", now)
	require.NoError(t, err)
	require.NoError(t, NewStoreRepo(db).Create(ctx, store))
	return centre, store
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestCampaignRepo_CreateAndGet(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 1, 10)
	repo := NewCampaignRepo(db, clock.NewMockClock(now))

	c := newCampaign(t, "c-2025", 2025, ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), ptr(day(2025, 4, 10)), now)
	require.NoError(t, repo.Create(ctx, c))
	assert.Empty(t, c.DomainEvents())

	got, err := repo.GetByID(ctx, "c-2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, "Collecte 2025", got.Title())
	assert.Equal(t, domain.StatusScheduled, got.StoredStatus())
	assert.True(t, day(2025, 3, 1).Equal(*got.DefaultStartAt()))
	assert.True(t, day(2025, 4, 10).Equal(*got.GraceUntil()))
	assert.Nil(t, got.LockedAt())

	assert.Equal(t, 1, countRows(t, db, "outbox_events"))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestCampaignRepo_SaveLockDate(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 1, 10)
	repo := NewCampaignRepo(db, clock.NewMockClock(now))

	require.NoError(t, repo.Create(ctx, newCampaign(t, "c-2025", 2025, ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), nil, now)))

	loaded, err := repo.GetByID(ctx, "c-2025")
	require.NoError(t, err)
	changed, err := loaded.Apply(domain.CampaignPatch{LockedAt: ptr(day(2025, 4, 20))}, now)
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Save(ctx, loaded))

	got, err := repo.GetByID(ctx, "c-2025")
	require.NoError(t, err)
	require.NotNil(t, got.LockedAt())
	assert.True(t, day(2025, 4, 20).Equal(*got.LockedAt()))
	assert.True(t, day(2025, 3, 1).Equal(*got.DefaultStartAt()))
	assert.True(t, day(2025, 3, 31).Equal(*got.DefaultEndAt()))
	assert.Nil(t, got.GraceUntil())
}

func TestCampaignRepo_YearUniqueness(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 1, 10)
	repo := NewCampaignRepo(db, clock.NewMockClock(now))

	first := newCampaign(t, "c1", 2025, nil, nil, nil, now)
	require.NoError(t, repo.Create(ctx, first))

	t.Run("duplicate live year conflicts", func(t *testing.T) {
		err := repo.Create(ctx, newCampaign(t, "c2", 2025, nil, nil, nil, now))
		assert.ErrorIs(t, err, domain.ErrDuplicateYear)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("year of a soft-deleted campaign can be reused", func(t *testing.T) {
		loaded, err := repo.GetByID(ctx, "c1")
		require.NoError(t, err)
		require.NoError(t, loaded.MarkDeleted(now))
		require.NoError(t, repo.Save(ctx, loaded))

		_, err = repo.GetByID(ctx, "c1")
		assert.ErrorIs(t, err, domain.ErrCampaignNotFound)

		require.NoError(t, repo.Create(ctx, newCampaign(t, "c3", 2025, nil, nil, nil, now)))
	})

	t.Run("changing the year re-checks uniqueness", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newCampaign(t, "c4", 2026, nil, nil, nil, now)))

		loaded, err := repo.GetByID(ctx, "c4")
		require.NoError(t, err)
		year := 2025
		_, err = loaded.Apply(domain.CampaignPatch{Year: &year}, now)
		require.NoError(t, err)

		assert.ErrorIs(t, repo.Save(ctx, loaded), domain.ErrDuplicateYear)

		taken, err := repo.ExistsForYear(ctx, 2026, "c4")
		require.NoError(t, err)
		assert.False(t, taken)
		taken, err = repo.ExistsForYear(ctx, 2026, "")
		require.NoError(t, err)
		assert.True(t, taken)
	})
}

func TestCampaignRepo_SavePartialUpdate(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 1, 10)
	repo := NewCampaignRepo(db, clock.NewMockClock(now))

	require.NoError(t, repo.Create(ctx, newCampaign(t, "c1", 2025, ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), nil, now)))

	loaded, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	title := "Printemps"
	changed, err := loaded.Apply(domain.CampaignPatch{Title: &title, EndAt: ptr(day(2025, 4, 5))}, now.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Save(ctx, loaded))

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Printemps", got.Title())
	assert.True(t, day(2025, 3, 1).Equal(*got.DefaultStartAt()), "omitted start keeps its value")
	assert.True(t, day(2025, 4, 5).Equal(*got.DefaultEndAt()))
	assert.True(t, now.Add(time.Hour).Equal(got.UpdatedAt()))

	// no pending change is a no-op
	require.NoError(t, repo.Save(ctx, got))
}

func TestCampaignRepo_ListAndWindow(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 1, 10)
	repo := NewCampaignRepo(db, clock.NewMockClock(now))

	for _, year := range []int{2023, 2024, 2025} {
		start := day(year, 3, 1)
		end := day(year, 3, 31)
		c := newCampaign(t, fmt.Sprintf("c%d", year), year, &start, &end, nil, now)
		require.NoError(t, repo.Create(ctx, c))
	}
	deleted, err := repo.GetByID(ctx, "c2023")
	require.NoError(t, err)
	require.NoError(t, deleted.MarkDeleted(now))
	require.NoError(t, repo.Save(ctx, deleted))

	t.Run("page", func(t *testing.T) {
		items, total, err := repo.List(ctx, contracts.CampaignFilter{Limit: 1, SortBy: contracts.SortByYear, Desc: true})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, items, 1)
		assert.Equal(t, 2025, items[0].Year())

		items, _, err = repo.List(ctx, contracts.CampaignFilter{Offset: 1, Limit: 1, SortBy: contracts.SortByYear, Desc: true})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2024, items[0].Year())
	})

	t.Run("list all", func(t *testing.T) {
		live, err := repo.ListAll(ctx, false)
		require.NoError(t, err)
		assert.Len(t, live, 2)

		all, err := repo.ListAll(ctx, true)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, 2025, all[0].Year())
		assert.True(t, all[2].IsDeleted())
	})

	t.Run("window lookup is inclusive", func(t *testing.T) {
		open, err := repo.FindOpenAt(ctx, day(2025, 3, 31))
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, "c2025", open[0].ID())

		open, err = repo.FindOpenAt(ctx, day(2025, 4, 1))
		require.NoError(t, err)
		assert.Empty(t, open)

		// soft-deleted campaigns never open
		open, err = repo.FindOpenAt(ctx, day(2023, 3, 10))
		require.NoError(t, err)
		assert.Empty(t, open)
	})
}

func TestEnrollmentRepo(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 3, 5)
	clk := clock.NewMockClock(now)
	_, store := seedDirectory(t, db, now)
	require.NoError(t, NewCampaignRepo(db, clk).Create(ctx, newCampaign(t, "c1", 2025, ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), nil, now)))

	repo := NewEnrollmentRepo(db, clk)
	require.NoError(t, repo.Create(ctx, domain.NewEnrollment("e1", "c1", store.ID, true, now)))

	t.Run("duplicate link conflicts", func(t *testing.T) {
		err := repo.Create(ctx, domain.NewEnrollment("e2", "c1", store.ID, true, now))
		assert.ErrorIs(t, err, domain.ErrDuplicateEnrollment)
	})

	t.Run("disabled links are not found by FindEnabled", func(t *testing.T) {
		link, err := repo.FindEnabled(ctx, "c1", store.ID)
		require.NoError(t, err)
		require.True(t, link.SetEnabled(false, now))
		require.NoError(t, repo.Save(ctx, link))

		_, err = repo.FindEnabled(ctx, "c1", store.ID)
		assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)

		got, err := repo.Get(ctx, "c1", store.ID)
		require.NoError(t, err)
		assert.False(t, got.Enabled())
	})

	t.Run("window and validation persist", func(t *testing.T) {
		link, err := repo.Get(ctx, "c1", store.ID)
		require.NoError(t, err)
		require.NoError(t, link.SetWindow(domain.EnrollmentWindow{StartAt: ptr(day(2025, 3, 2)), EndAt: ptr(day(2025, 3, 20))}, now))
		require.NoError(t, link.Validate(now))
		require.NoError(t, repo.Save(ctx, link))

		links, err := repo.ListByCampaign(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.True(t, day(2025, 3, 20).Equal(*links[0].Window().EndAt))
		assert.NotNil(t, links[0].ValidatedAt())
	})
}

func TestDirectoryRepos(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 3, 5)
	centre, store := seedDirectory(t, db, now)
	stores := NewStoreRepo(db)

	t.Run("addresses are unique per centre", func(t *testing.T) {
		dup, err := domain.NewStore("store-2", centre.ID, "Other", "12 avenue B", "", "", "", now)
		require.NoError(t, err)
		assert.ErrorIs(t, stores.Create(ctx, dup), domain.ErrDuplicateAddress)

		taken, err := stores.ExistsAddress(ctx, centre.ID, "12 avenue B", "")
		require.NoError(t, err)
		assert.True(t, taken)
		taken, err = stores.ExistsAddress(ctx, centre.ID, "12 avenue B", store.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("update", func(t *testing.T) {
		store.Name = "Super U Express"
		store.UpdatedAt = now.Add(time.Minute)
		require.NoError(t, stores.Update(ctx, store))

		got, err := stores.GetByID(ctx, store.ID)
		require.NoError(t, err)
		assert.Equal(t, "Super U Express", got.Name)

		list, err := stores.ListByCentre(ctx, centre.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("centre uniqueness", func(t *testing.T) {
		centres := NewCentreRepo(db)
		taken, err := centres.ExistsEmail(ctx, "nord@example.org")
		require.NoError(t, err)
		assert.True(t, taken)

		other, err := domain.NewCentre("centre-2", "Centre Sud", "2 rue C", "", "nord@example.org", "", now)
		require.NoError(t, err)
		assert.ErrorIs(t, centres.Create(ctx, other), domain.ErrDuplicateEmail)

		_, err = centres.GetByID(ctx, "centre-2")
		assert.ErrorIs(t, err, domain.ErrCentreNotFound)
	})

	t.Run("products", func(t *testing.T) {
		products := NewProductRepo(db)
		p, err := domain.NewProduct("p1", "3017620422003", "Epicerie", "Petit dejeuner", now)
		require.NoError(t, err)
		require.NoError(t, products.Create(ctx, p))

		dup, err := domain.NewProduct("p2", "3017620422003", "Epicerie", "Sucre", now)
		require.NoError(t, err)
		assert.ErrorIs(t, products.Create(ctx, dup), domain.ErrDuplicateBarcode)

		got, err := products.GetByBarcode(ctx, "3017620422003")
		require.NoError(t, err)
		assert.Equal(t, "p1", got.ID)

		_, err = products.GetByBarcode(ctx, "0000")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		list, total, err := products.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)
	})
}

func TestEntryRepo_Aggregations(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 3, 5)
	clk := clock.NewMockClock(now)
	centre, store := seedDirectory(t, db, now)
	require.NoError(t, NewCampaignRepo(db, clk).Create(ctx, newCampaign(t, "c1", 2025, ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), nil, now)))

	products := NewProductRepo(db)
	for _, p := range []struct{ id, barcode string }{{"pa", "111"}, {"pb", "222"}, {"pc", "333"}} {
		prod, err := domain.NewProduct(p.id, p.barcode, "Epicerie", "Conserves", now)
		require.NoError(t, err)
		require.NoError(t, products.Create(ctx, prod))
	}

	entries := NewEntryRepo(db)
	record := func(id, productID string, weight float64, at time.Time) {
		e, err := domain.NewEntry(id, "c1", store.ID, productID, centre.ID, weight, at)
		require.NoError(t, err)
		require.NoError(t, entries.Create(ctx, e))
	}
	record("e1", "pa", 2, now)
	record("e2", "pa", 3, now.Add(time.Minute))
	record("e3", "pb", 1, now.Add(2*time.Minute))

	t.Run("sum by product", func(t *testing.T) {
		totals, err := entries.SumByProduct(ctx, contracts.EntryScope{CampaignID: "c1"})
		require.NoError(t, err)
		require.Len(t, totals, 2, "products without entries are absent")

		assert.Equal(t, "pa", totals[0].ProductID)
		assert.InDelta(t, 5.0, totals[0].TotalWeight, 1e-9)
		assert.Equal(t, int64(2), totals[0].EntryCount)
		assert.Equal(t, "pb", totals[1].ProductID)
		assert.InDelta(t, 1.0, totals[1].TotalWeight, 1e-9)
	})

	t.Run("centre scope", func(t *testing.T) {
		totals, err := entries.SumByProduct(ctx, contracts.EntryScope{CampaignID: "c1", CentreID: "other"})
		require.NoError(t, err)
		assert.Empty(t, totals)
	})

	t.Run("ledger newest first", func(t *testing.T) {
		rows, err := entries.Ledger(ctx, contracts.EntryScope{CampaignID: "c1", StoreID: store.ID})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "e3", rows[0].ID)
		assert.Equal(t, "222", rows[0].Barcode)
		assert.Equal(t, "e1", rows[2].ID)
		assert.True(t, now.Equal(rows[2].Date))
	})

	t.Run("events are written with the entry", func(t *testing.T) {
		events, err := NewEventsReadModel(db).ListEvents(ctx, contracts.EventFilter{EventType: domain.EventEntryRecorded, Limit: 10})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Contains(t, events[0].Payload, "\"weight\"")
		assert.Equal(t, contracts.EventStatusPending, events[0].Status)
	})
}

func TestEnrolledStores(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	now := day(2025, 3, 5)
	clk := clock.NewMockClock(now)
	centre, store := seedDirectory(t, db, now)
	other, err := domain.NewStore("store-2", centre.ID, "Carrefour", "3 place D", "", "", "", now)
	require.NoError(t, err)
	stores := NewStoreRepo(db)
	require.NoError(t, stores.Create(ctx, other))

	require.NoError(t, NewCampaignRepo(db, clk).Create(ctx, newCampaign(t, "c1", 2025, ptr(day(2025, 3, 1)), ptr(day(2025, 3, 31)), nil, now)))
	links := NewEnrollmentRepo(db, clk)
	require.NoError(t, links.Create(ctx, domain.NewEnrollment("e1", "c1", store.ID, true, now)))
	require.NoError(t, links.Create(ctx, domain.NewEnrollment("e2", "c1", other.ID, false, now)))

	enrolled, err := stores.ListEnrolled(ctx, centre.ID, "c1")
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, store.ID, enrolled[0].ID)
	assert.Equal(t, "12 avenue B", enrolled[0].Address)
}

func TestIsDuplicate(t *testing.T) {
	assert.False(t, isDuplicate(nil))
	assert.False(t, isDuplicate(assert.AnError))
}
