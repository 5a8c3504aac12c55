package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_enrollment"
	"github.com/light-bringer/collecte-service/internal/models/m_outbox"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
	"github.com/light-bringer/collecte-service/internal/pkg/committer"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// EnrollmentRepo implements EnrollmentRepository for Spanner.
type EnrollmentRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_enrollment.Model
	outbox    *m_outbox.Model
	clock     clock.Clock
}

// NewEnrollmentRepo creates a new EnrollmentRepo.
func NewEnrollmentRepo(client *spanner.Client, c *committer.Committer, clk clock.Clock) *EnrollmentRepo {
	return &EnrollmentRepo{
		client:    client,
		committer: c,
		model:     m_enrollment.NewModel(),
		outbox:    m_outbox.NewModel(),
		clock:     clk,
	}
}

var _ contracts.EnrollmentRepository = (*EnrollmentRepo)(nil)

// Get returns the (campaign, store) link.
func (r *EnrollmentRepo) Get(ctx context.Context, campaignID, storeID string) (*domain.Enrollment, error) {
	return r.find(ctx, campaignID, storeID, false)
}

// FindEnabled returns the link only when it is enabled.
func (r *EnrollmentRepo) FindEnabled(ctx context.Context, campaignID, storeID string) (*domain.Enrollment, error) {
	return r.find(ctx, campaignID, storeID, true)
}

func (r *EnrollmentRepo) find(ctx context.Context, campaignID, storeID string, enabledOnly bool) (*domain.Enrollment, error) {
	b := query.From(m_enrollment.TableName).
		Select(m_enrollment.Columns...).
		Where(query.Eq(m_enrollment.CampaignID, campaignID)).
		Where(query.Eq(m_enrollment.StoreID, storeID))
	if enabledOnly {
		b = b.Where(query.Eq(m_enrollment.Enabled, true))
	}

	rows, err := queryAll(ctx, r.client.Single(), b.Limit(1).Build(), decodeEnrollment)
	if err != nil {
		return nil, fmt.Errorf("failed to read enrollment: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrEnrollmentNotFound
	}
	return rows[0], nil
}

// Create inserts a link with its toggle event.
func (r *EnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) error {
	w := e.Window()
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(&m_enrollment.Data{
		EnrollmentID: e.ID(),
		CampaignID:   e.CampaignID(),
		StoreID:      e.StoreID(),
		Enabled:      e.Enabled(),
		StartAt:      nullTime(w.StartAt),
		EndAt:        nullTime(w.EndAt),
		GraceUntil:   nullTime(w.GraceUntil),
		ValidatedAt:  nullTime(e.ValidatedAt()),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}))

	events, err := outboxMutations(r.outbox, e.DomainEvents(), r.clock.Now())
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	if err := commitError(r.committer.Apply(ctx, plan), domain.ErrDuplicateEnrollment, "insert enrollment"); err != nil {
		return err
	}
	e.ClearEvents()
	return nil
}

// Save writes the dirty fields of e.
func (r *EnrollmentRepo) Save(ctx context.Context, e *domain.Enrollment) error {
	changes := e.Changes()
	if !changes.HasChanges() {
		return nil
	}

	w := e.Window()
	updates := map[string]interface{}{
		m_enrollment.UpdatedAt: e.UpdatedAt(),
	}
	if changes.Dirty(domain.FieldEnabled) {
		updates[m_enrollment.Enabled] = e.Enabled()
	}
	if changes.Dirty(domain.FieldStartAt) {
		updates[m_enrollment.StartAt] = nullTime(w.StartAt)
	}
	if changes.Dirty(domain.FieldEndAt) {
		updates[m_enrollment.EndAt] = nullTime(w.EndAt)
	}
	if changes.Dirty(domain.FieldGraceUntil) {
		updates[m_enrollment.GraceUntil] = nullTime(w.GraceUntil)
	}
	if changes.Dirty(domain.FieldValidatedAt) {
		updates[m_enrollment.ValidatedAt] = nullTime(e.ValidatedAt())
	}

	plan := committer.NewPlan()
	plan.Add(r.model.UpdateMut(e.ID(), updates))
	events, err := outboxMutations(r.outbox, e.DomainEvents(), r.clock.Now())
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	e.ClearEvents()
	return nil
}

// ListByCampaign returns every link of a campaign.
func (r *EnrollmentRepo) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Enrollment, error) {
	stmt := query.From(m_enrollment.TableName).
		Select(m_enrollment.Columns...).
		Where(query.Eq(m_enrollment.CampaignID, campaignID)).
		OrderBy(m_enrollment.CreatedAt, query.Asc).
		Build()

	rows, err := queryAll(ctx, r.client.Single(), stmt, decodeEnrollment)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return rows, nil
}

func decodeEnrollment(row *spanner.Row) (*domain.Enrollment, error) {
	var data m_enrollment.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse enrollment: %w", err)
	}
	return domain.ReconstructEnrollment(
		data.EnrollmentID,
		data.CampaignID,
		data.StoreID,
		data.Enabled,
		domain.EnrollmentWindow{
			StartAt:    timePtr(data.StartAt),
			EndAt:      timePtr(data.EndAt),
			GraceUntil: timePtr(data.GraceUntil),
		},
		timePtr(data.ValidatedAt),
		data.CreatedAt.UTC(),
		data.UpdatedAt.UTC(),
	), nil
}
