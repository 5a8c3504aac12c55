package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_campaign"
	"github.com/light-bringer/collecte-service/internal/models/m_outbox"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
	"github.com/light-bringer/collecte-service/internal/pkg/committer"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// CampaignRepo implements CampaignRepository for Spanner.
type CampaignRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_campaign.Model
	outbox    *m_outbox.Model
	clock     clock.Clock
}

// NewCampaignRepo creates a new CampaignRepo.
func NewCampaignRepo(client *spanner.Client, c *committer.Committer, clk clock.Clock) *CampaignRepo {
	return &CampaignRepo{
		client:    client,
		committer: c,
		model:     m_campaign.NewModel(),
		outbox:    m_outbox.NewModel(),
		clock:     clk,
	}
}

var _ contracts.CampaignRepository = (*CampaignRepo)(nil)

// Create inserts the campaign and its creation event. The year is checked
// inside the transaction and again by the unique index on active_year.
func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(domainToCampaignData(c)))

	events, err := outboxMutations(r.outbox, c.DomainEvents(), r.clock.Now())
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	err = r.committer.ApplyWithCheck(ctx, plan, func(ctx context.Context, txn *spanner.ReadWriteTransaction, _ *committer.CommitPlan) error {
		taken, err := exists(ctx, txn, r.yearTakenStmt(c.Year(), c.ID()))
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateYear
		}
		return nil
	})
	if err := commitError(err, domain.ErrDuplicateYear, "insert campaign"); err != nil {
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

	updates := campaignUpdates(c)
	plan := committer.NewPlan()
	plan.Add(r.model.UpdateMut(c.ID(), updates))

	events, err := outboxMutations(r.outbox, c.DomainEvents(), r.clock.Now())
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	var check func(context.Context, *spanner.ReadWriteTransaction, *committer.CommitPlan) error
	if changes.Dirty(domain.FieldYear) && !c.IsDeleted() {
		check = func(ctx context.Context, txn *spanner.ReadWriteTransaction, _ *committer.CommitPlan) error {
			taken, err := exists(ctx, txn, r.yearTakenStmt(c.Year(), c.ID()))
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrDuplicateYear
			}
			return nil
		}
	}

	err = r.committer.ApplyWithCheck(ctx, plan, check)
	if err := commitError(err, domain.ErrDuplicateYear, "update campaign"); err != nil {
		return err
	}

	c.ClearEvents()
	return nil
}

// GetByID returns a non-deleted campaign.
func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row, err := r.client.Single().ReadRow(ctx, m_campaign.TableName, spanner.Key{id}, m_campaign.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to read campaign: %w", err)
	}

	c, err := decodeCampaign(row)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

// ExistsForYear reports whether a live campaign other than excludeID holds
// year.
func (r *CampaignRepo) ExistsForYear(ctx context.Context, year int, excludeID string) (bool, error) {
	ok, err := exists(ctx, r.client.Single(), r.yearTakenStmt(year, excludeID))
	if err != nil {
		return false, fmt.Errorf("failed to check campaign year: %w", err)
	}
	return ok, nil
}

// List returns a page of non-deleted campaigns.
func (r *CampaignRepo) List(ctx context.Context, f contracts.CampaignFilter) ([]*domain.Campaign, int64, error) {
	dir := query.Asc
	if f.Desc {
		dir = query.Desc
	}

	base := query.From(m_campaign.TableName).
		Select(m_campaign.Columns...).
		Where(query.IsNull(m_campaign.DeletedAt))

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := queryCount(ctx, txn, base.Count().Build())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	stmt := base.
		OrderBy(sortColumn(f.SortBy), dir).
		OrderBy(m_campaign.CampaignID, query.Asc).
		Limit(int64(f.Limit)).
		Offset(int64(f.Offset)).
		Build()

	campaigns, err := queryAll(ctx, txn, stmt, decodeCampaign)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, total, nil
}

// ListAll returns every campaign by year, newest first.
func (r *CampaignRepo) ListAll(ctx context.Context, includeDeleted bool) ([]*domain.Campaign, error) {
	b := query.From(m_campaign.TableName).Select(m_campaign.Columns...)
	if !includeDeleted {
		b = b.Where(query.IsNull(m_campaign.DeletedAt))
	}
	stmt := b.OrderBy(m_campaign.Year, query.Desc).
		OrderBy(m_campaign.CreatedAt, query.Desc).
		Build()

	campaigns, err := queryAll(ctx, r.client.Single(), stmt, decodeCampaign)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// FindOpenAt returns live campaigns whose default window contains at.
func (r *CampaignRepo) FindOpenAt(ctx context.Context, at time.Time) ([]*domain.Campaign, error) {
	stmt := query.From(m_campaign.TableName).
		Select(m_campaign.Columns...).
		Where(query.IsNull(m_campaign.DeletedAt)).
		Where(query.Lte(m_campaign.DefaultStartAt, at)).
		Where(query.Gte(m_campaign.DefaultEndAt, at)).
		OrderBy(m_campaign.Year, query.Desc).
		Build()

	campaigns, err := queryAll(ctx, r.client.Single(), stmt, decodeCampaign)
	if err != nil {
		return nil, fmt.Errorf("failed to find open campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *CampaignRepo) yearTakenStmt(year int, excludeID string) spanner.Statement {
	b := query.From(m_campaign.TableName).
		Where(query.Eq(m_campaign.ActiveYear, int64(year)))
	if excludeID != "" {
		b = b.Where(query.Ne(m_campaign.CampaignID, excludeID))
	}
	return b.Count().Build()
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

// campaignUpdates maps dirty fields to column values.
func campaignUpdates(c *domain.Campaign) map[string]interface{} {
	changes := c.Changes()
	updates := map[string]interface{}{
		m_campaign.UpdatedAt: c.UpdatedAt(),
	}

	if changes.Dirty(domain.FieldYear) {
		updates[m_campaign.Year] = int64(c.Year())
		if !c.IsDeleted() {
			updates[m_campaign.ActiveYear] = int64(c.Year())
		}
	}
	if changes.Dirty(domain.FieldTitle) {
		updates[m_campaign.Title] = c.Title()
	}
	if changes.Dirty(domain.FieldSlug) {
		updates[m_campaign.Slug] = c.Slug()
	}
	if changes.Dirty(domain.FieldStartAt) {
		updates[m_campaign.DefaultStartAt] = nullTime(c.DefaultStartAt())
	}
	if changes.Dirty(domain.FieldEndAt) {
		updates[m_campaign.DefaultEndAt] = nullTime(c.DefaultEndAt())
	}
	if changes.Dirty(domain.FieldGraceUntil) {
		updates[m_campaign.GraceUntil] = nullTime(c.GraceUntil())
	}
	if changes.Dirty(domain.FieldLockedAt) {
		updates[m_campaign.LockedAt] = nullTime(c.LockedAt())
	}
	if changes.Dirty(domain.FieldStatus) {
		updates[m_campaign.Status] = string(c.StoredStatus())
	}
	if changes.Dirty(domain.FieldDeletedAt) {
		updates[m_campaign.DeletedAt] = nullTime(c.DeletedAt())
		updates[m_campaign.ActiveYear] = spanner.NullInt64{}
	}
	return updates
}

func domainToCampaignData(c *domain.Campaign) *m_campaign.Data {
	data := &m_campaign.Data{
		CampaignID:     c.ID(),
		Year:           int64(c.Year()),
		Title:          c.Title(),
		Slug:           c.Slug(),
		DefaultStartAt: nullTime(c.DefaultStartAt()),
		DefaultEndAt:   nullTime(c.DefaultEndAt()),
		GraceUntil:     nullTime(c.GraceUntil()),
		LockedAt:       nullTime(c.LockedAt()),
		Status:         string(c.StoredStatus()),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
		DeletedAt:      nullTime(c.DeletedAt()),
	}
	if !c.IsDeleted() {
		data.ActiveYear = spanner.NullInt64{Int64: int64(c.Year()), Valid: true}
	}
	return data
}

func decodeCampaign(row *spanner.Row) (*domain.Campaign, error) {
	var data m_campaign.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse campaign: %w", err)
	}
	return campaignDataToDomain(&data)
}

func campaignDataToDomain(data *m_campaign.Data) (*domain.Campaign, error) {
	status, err := domain.ParseStatus(data.Status)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", data.CampaignID, err)
	}
	return domain.ReconstructCampaign(
		data.CampaignID,
		int(data.Year),
		data.Title,
		data.Slug,
		domain.Schedule{
			StartAt:    timePtr(data.DefaultStartAt),
			EndAt:      timePtr(data.DefaultEndAt),
			GraceUntil: timePtr(data.GraceUntil),
		},
		timePtr(data.LockedAt),
		status,
		data.CreatedAt.UTC(),
		data.UpdatedAt.UTC(),
		timePtr(data.DeletedAt),
	), nil
}
