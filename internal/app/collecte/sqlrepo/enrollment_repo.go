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
	"github.com/light-bringer/collecte-service/internal/models/m_enrollment"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

type enrollmentRow struct {
	EnrollmentID string       `db:"enrollment_id"`
	CampaignID   string       `db:"campaign_id"`
	StoreID      string       `db:"store_id"`
	Enabled      bool         `db:"enabled"`
	StartAt      sql.NullTime `db:"start_at"`
	EndAt        sql.NullTime `db:"end_at"`
	GraceUntil   sql.NullTime `db:"grace_until"`
	ValidatedAt  sql.NullTime `db:"validated_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (row enrollmentRow) toDomain() *domain.Enrollment {
	return domain.ReconstructEnrollment(
		row.EnrollmentID,
		row.CampaignID,
		row.StoreID,
		row.Enabled,
		domain.EnrollmentWindow{
			StartAt:    timePtr(row.StartAt),
			EndAt:      timePtr(row.EndAt),
			GraceUntil: timePtr(row.GraceUntil),
		},
		timePtr(row.ValidatedAt),
		row.CreatedAt.UTC(),
		row.UpdatedAt.UTC(),
	)
}

// EnrollmentRepo implements EnrollmentRepository on sqlx.
type EnrollmentRepo struct {
	db    *sqlx.DB
	clock clock.Clock
}

// NewEnrollmentRepo creates a new EnrollmentRepo.
func NewEnrollmentRepo(db *sqlx.DB, clk clock.Clock) *EnrollmentRepo {
	return &EnrollmentRepo{db: db, clock: clk}
}

var _ contracts.EnrollmentRepository = (*EnrollmentRepo)(nil)

func (r *EnrollmentRepo) Get(ctx context.Context, campaignID, storeID string) (*domain.Enrollment, error) {
	return r.find(ctx, campaignID, storeID, false)
}

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

	var row enrollmentRow
	err := getOne(ctx, r.db, &row, b.Limit(1))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read enrollment: %w", err)
	}
	return row.toDomain(), nil
}

// Create inserts a link with its toggle event.
func (r *EnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) error {
	w := e.Window()
	row := enrollmentRow{
		EnrollmentID: e.ID(),
		CampaignID:   e.CampaignID(),
		StoreID:      e.StoreID(),
		Enabled:      e.Enabled(),
		StartAt:      nullTime(w.StartAt),
		EndAt:        nullTime(w.EndAt),
		GraceUntil:   nullTime(w.GraceUntil),
		ValidatedAt:  nullTime(e.ValidatedAt()),
		CreatedAt:    e.CreatedAt().UTC(),
		UpdatedAt:    e.UpdatedAt().UTC(),
	}
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := sqlx.NamedExecContext(ctx, tx, namedInsert(m_enrollment.TableName, m_enrollment.Columns), row); err != nil {
			return err
		}
		return insertEvents(ctx, tx, e.DomainEvents(), r.clock.Now())
	})
	if err := writeError(err, domain.ErrDuplicateEnrollment, "insert enrollment"); err != nil {
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
	set := map[string]interface{}{
		m_enrollment.UpdatedAt: e.UpdatedAt().UTC(),
	}
	if changes.Dirty(domain.FieldEnabled) {
		set[m_enrollment.Enabled] = e.Enabled()
	}
	if changes.Dirty(domain.FieldStartAt) {
		set[m_enrollment.StartAt] = nullTime(w.StartAt)
	}
	if changes.Dirty(domain.FieldEndAt) {
		set[m_enrollment.EndAt] = nullTime(w.EndAt)
	}
	if changes.Dirty(domain.FieldGraceUntil) {
		set[m_enrollment.GraceUntil] = nullTime(w.GraceUntil)
	}
	if changes.Dirty(domain.FieldValidatedAt) {
		set[m_enrollment.ValidatedAt] = nullTime(e.ValidatedAt())
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := updateColumns(ctx, tx, m_enrollment.TableName, m_enrollment.EnrollmentID, e.ID(), set); err != nil {
			if errors.Is(err, errNoRowsUpdated) {
				return domain.ErrEnrollmentNotFound
			}
			return err
		}
		return insertEvents(ctx, tx, e.DomainEvents(), r.clock.Now())
	})
	if errors.Is(err, domain.ErrEnrollmentNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	e.ClearEvents()
	return nil
}

func (r *EnrollmentRepo) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Enrollment, error) {
	var rows []enrollmentRow
	err := selectAll(ctx, r.db, &rows, query.From(m_enrollment.TableName).
		Select(m_enrollment.Columns...).
		Where(query.Eq(m_enrollment.CampaignID, campaignID)).
		OrderBy(m_enrollment.CreatedAt, query.Asc))
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	out := make([]*domain.Enrollment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
