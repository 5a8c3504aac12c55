package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_campaign"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// campaignColumns are the SQL columns. Year uniqueness is a partial index,
// so there is no active_year here.
var campaignColumns = []string{
	m_campaign.CampaignID,
	m_campaign.Year,
	m_campaign.Title,
	m_campaign.Slug,
	m_campaign.DefaultStartAt,
	m_campaign.DefaultEndAt,
	m_campaign.GraceUntil,
	m_campaign.LockedAt,
	m_campaign.Status,
	m_campaign.CreatedAt,
	m_campaign.UpdatedAt,
	m_campaign.DeletedAt,
}

type campaignRow struct {
	CampaignID     string       `db:"campaign_id"`
	Year           int64        `db:"year"`
	Title          string       `db:"title"`
	Slug           string       `db:"slug"`
	DefaultStartAt sql.NullTime `db:"default_start_at"`
	DefaultEndAt   sql.NullTime `db:"default_end_at"`
	GraceUntil     sql.NullTime `db:"grace_until"`
	LockedAt       sql.NullTime `db:"locked_at"`
	Status         string       `db:"status"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
	DeletedAt      sql.NullTime `db:"deleted_at"`
}

// CampaignRepo implements CampaignRepository on sqlx.
type CampaignRepo struct {
	db    *sqlx.DB
	clock clock.Clock
}

// NewCampaignRepo creates a new CampaignRepo.
func NewCampaignRepo(db *sqlx.DB, clk clock.Clock) *CampaignRepo {
	return &CampaignRepo{db: db, clock: clk}
}

var _ contracts.CampaignRepository = (*CampaignRepo)(nil)

// Create inserts the campaign and its events. The year is checked inside the
// transaction; the partial unique index catches concurrent inserts.
func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.checkYear(ctx, tx, c.Year(), c.ID()); err != nil {
			return err
		}
		if _, err := sqlx.NamedExecContext(ctx, tx, namedInsert(m_campaign.TableName, campaignColumns), toCampaignRow(c)); err != nil {
			return err
		}
		return insertEvents(ctx, tx, c.DomainEvents(), r.clock.Now())
	})
	if err := writeError(err, domain.ErrDuplicateYear, "insert campaign"); err != nil {
		return err
	}
	c.ClearEvents()
	return nil
}

// Save writes the dirty fields of c together with its pending events.
func (r *CampaignRepo) Save(ctx context.Context, c *domain.Campaign) error {
	changes := c.Changes()
	if !changes.HasChanges() && len(c.DomainEvents()) == 0 {
		return nil
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if changes.Dirty(domain.FieldYear) && !c.IsDeleted() {
			if err := r.checkYear(ctx, tx, c.Year(), c.ID()); err != nil {
				return err
			}
		}
		if err := updateColumns(ctx, tx, m_campaign.TableName, m_campaign.CampaignID, c.ID(), campaignSets(c)); err != nil {
			if errors.Is(err, errNoRowsUpdated) {
				return domain.ErrCampaignNotFound
			}
			return err
		}
		return insertEvents(ctx, tx, c.DomainEvents(), r.clock.Now())
	})
	if errors.Is(err, domain.ErrCampaignNotFound) {
		return err
	}
	if err := writeError(err, domain.ErrDuplicateYear, "update campaign"); err != nil {
		return err
	}
	c.ClearEvents()
	return nil
}

// GetByID returns a non-deleted campaign.
func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var row campaignRow
	err := getOne(ctx, r.db, &row, query.From(m_campaign.TableName).
		Select(campaignColumns...).
		Where(query.Eq(m_campaign.CampaignID, id)).
		Where(query.IsNull(m_campaign.DeletedAt)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign: %w", err)
	}
	return row.toDomain()
}

// ExistsForYear reports whether a live campaign other than excludeID holds
// year.
func (r *CampaignRepo) ExistsForYear(ctx context.Context, year int, excludeID string) (bool, error) {
	n, err := count(ctx, r.db, yearTaken(year, excludeID))
	if err != nil {
		return false, fmt.Errorf("failed to check campaign year: %w", err)
	}
	return n > 0, nil
}

// List returns a page of non-deleted campaigns.
func (r *CampaignRepo) List(ctx context.Context, f contracts.CampaignFilter) ([]*domain.Campaign, int64, error) {
	dir := query.Asc
	if f.Desc {
		dir = query.Desc
	}
	base := query.From(m_campaign.TableName).
		Select(campaignColumns...).
		Where(query.IsNull(m_campaign.DeletedAt))

	total, err := count(ctx, r.db, base)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var rows []campaignRow
	err = selectAll(ctx, r.db, &rows, base.
		OrderBy(sortColumn(f.SortBy), dir).
		OrderBy(m_campaign.CampaignID, query.Asc).
		Limit(int64(f.Limit)).
		Offset(int64(f.Offset)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	campaigns, err := campaignsFromRows(rows)
	return campaigns, total, err
}

// ListAll returns every campaign by year, newest first.
func (r *CampaignRepo) ListAll(ctx context.Context, includeDeleted bool) ([]*domain.Campaign, error) {
	b := query.From(m_campaign.TableName).Select(campaignColumns...)
	if !includeDeleted {
		b = b.Where(query.IsNull(m_campaign.DeletedAt))
	}

	var rows []campaignRow
	err := selectAll(ctx, r.db, &rows, b.
		OrderBy(m_campaign.Year, query.Desc).
		OrderBy(m_campaign.CreatedAt, query.Desc))
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaignsFromRows(rows)
}

// FindOpenAt returns live campaigns whose default window contains at.
func (r *CampaignRepo) FindOpenAt(ctx context.Context, at time.Time) ([]*domain.Campaign, error) {
	at = at.UTC()
	var rows []campaignRow
	err := selectAll(ctx, r.db, &rows, query.From(m_campaign.TableName).
		Select(campaignColumns...).
		Where(query.IsNull(m_campaign.DeletedAt)).
		Where(query.Lte(m_campaign.DefaultStartAt, at)).
		Where(query.Gte(m_campaign.DefaultEndAt, at)).
		OrderBy(m_campaign.Year, query.Desc))
	if err != nil {
		return nil, fmt.Errorf("failed to find open campaigns: %w", err)
	}
	return campaignsFromRows(rows)
}

func (r *CampaignRepo) checkYear(ctx context.Context, q DBExecutor, year int, excludeID string) error {
	n, err := count(ctx, q, yearTaken(year, excludeID))
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDuplicateYear
	}
	return nil
}

func yearTaken(year int, excludeID string) *query.Builder {
	b := query.From(m_campaign.TableName).
		Where(query.Eq(m_campaign.Year, int64(year))).
		Where(query.IsNull(m_campaign.DeletedAt))
	if excludeID != "" {
		b = b.Where(query.Ne(m_campaign.CampaignID, excludeID))
	}
	return b
}

func sortColumn(s contracts.CampaignSort) string {
	switch s {
	case contracts.SortByTitle:
		return m_campaign.Title
	case contracts.SortByCreatedAt:
		return m_campaign.CreatedAt
	case contracts.SortByStartAt:
		return m_campaign.DefaultStartAt
	default:
		return m_campaign.Year
	}
}

func campaignSets(c *domain.Campaign) map[string]interface{} {
	changes := c.Changes()
	set := map[string]interface{}{
		m_campaign.UpdatedAt: c.UpdatedAt().UTC(),
	}
	if changes.Dirty(domain.FieldYear) {
		set[m_campaign.Year] = int64(c.Year())
	}
	if changes.Dirty(domain.FieldTitle) {
		set[m_campaign.Title] = c.Title()
	}
	if changes.Dirty(domain.FieldSlug) {
		set[m_campaign.Slug] = c.Slug()
	}
	if changes.Dirty(domain.FieldStartAt) {
		set[m_campaign.DefaultStartAt] = nullTime(c.DefaultStartAt())
	}
	if changes.Dirty(domain.FieldEndAt) {
		set[m_campaign.DefaultEndAt] = nullTime(c.DefaultEndAt())
	}
	if changes.Dirty(domain.FieldGraceUntil) {
		set[m_campaign.GraceUntil] = nullTime(c.GraceUntil())
	}
	if changes.Dirty(domain.FieldLockedAt) {
		set[m_campaign.LockedAt] = nullTime(c.LockedAt())
	}
	if changes.Dirty(domain.FieldStatus) {
		set[m_campaign.Status] = string(c.StoredStatus())
	}
	if changes.Dirty(domain.FieldDeletedAt) {
		set[m_campaign.DeletedAt] = nullTime(c.DeletedAt())
	}
	return set
}

func toCampaignRow(c *domain.Campaign) campaignRow {
	return campaignRow{
		CampaignID:     c.ID(),
		Year:           int64(c.Year()),
		Title:          c.Title(),
		Slug:           c.Slug(),
		DefaultStartAt: nullTime(c.DefaultStartAt()),
		DefaultEndAt:   nullTime(c.DefaultEndAt()),
		GraceUntil:     nullTime(c.GraceUntil()),
		LockedAt:       nullTime(c.LockedAt()),
		Status:         string(c.StoredStatus()),
		CreatedAt:      c.CreatedAt().UTC(),
		UpdatedAt:      c.UpdatedAt().UTC(),
		DeletedAt:      nullTime(c.DeletedAt()),
	}
}

func (row campaignRow) toDomain() (*domain.Campaign, error) {
	status, err := domain.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", row.CampaignID, err)
	}
	return domain.ReconstructCampaign(
		row.CampaignID,
		int(row.Year),
		row.Title,
		row.Slug,
		domain.Schedule{
			StartAt:    timePtr(row.DefaultStartAt),
			EndAt:      timePtr(row.DefaultEndAt),
			GraceUntil: timePtr(row.GraceUntil),
		},
		timePtr(row.LockedAt),
		status,
		row.CreatedAt.UTC(),
		row.UpdatedAt.UTC(),
		timePtr(row.DeletedAt),
	), nil
}

func campaignsFromRows(rows []campaignRow) ([]*domain.Campaign, error) {
	out := make([]*domain.Campaign, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
