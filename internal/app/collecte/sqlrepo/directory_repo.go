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
	"github.com/light-bringer/collecte-service/internal/models/m_centre"
	"github.com/light-bringer/collecte-service/internal/models/m_enrollment"
	"github.com/light-bringer/collecte-service/internal/models/m_product"
	"github.com/light-bringer/collecte-service/internal/models/m_store"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

type storeRow struct {
	StoreID     string         `db:"store_id"`
	CentreID    string         `db:"centre_id"`
	Name        string         `db:"name"`
	Address     string         `db:"address"`
	Phone       sql.NullString `db:"phone"`
	Email       sql.NullString `db:"email"`
	ExternalRef sql.NullString `db:"external_ref"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}

func toStoreRow(s *domain.Store) storeRow {
	return storeRow{
		StoreID:     s.ID,
		CentreID:    s.CentreID,
		Name:        s.Name,
		Address:     s.Address,
		Phone:       nullString(s.Phone),
		Email:       nullString(s.Email),
		ExternalRef: nullString(s.ExternalRef),
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
		DeletedAt:   nullTime(s.DeletedAt),
	}
}

func (row storeRow) toDomain() *domain.Store {
	return &domain.Store{
		ID:          row.StoreID,
		CentreID:    row.CentreID,
		Name:        row.Name,
		Address:     row.Address,
		Phone:       row.Phone.String,
		Email:       row.Email.String,
		ExternalRef: row.ExternalRef.String,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		DeletedAt:   timePtr(row.DeletedAt),
	}
}

func storesFromRows(rows []storeRow) []*domain.Store {
	out := make([]*domain.Store, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

// StoreRepo implements StoreRepository on sqlx.
type StoreRepo struct {
	db *sqlx.DB
}

// NewStoreRepo creates a new StoreRepo.
func NewStoreRepo(db *sqlx.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

var _ contracts.StoreRepository = (*StoreRepo)(nil)

func (r *StoreRepo) Create(ctx context.Context, s *domain.Store) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, namedInsert(m_store.TableName, m_store.Columns), toStoreRow(s))
	return writeError(err, domain.ErrDuplicateAddress, "insert store")
}

func (r *StoreRepo) Update(ctx context.Context, s *domain.Store) error {
	row := toStoreRow(s)
	err := updateColumns(ctx, r.db, m_store.TableName, m_store.StoreID, s.ID, map[string]interface{}{
		m_store.Name:        row.Name,
		m_store.Address:     row.Address,
		m_store.Phone:       row.Phone,
		m_store.Email:       row.Email,
		m_store.ExternalRef: row.ExternalRef,
		m_store.UpdatedAt:   row.UpdatedAt,
		m_store.DeletedAt:   row.DeletedAt,
	})
	if errors.Is(err, errNoRowsUpdated) {
		return domain.ErrStoreNotFound
	}
	return writeError(err, domain.ErrDuplicateAddress, "update store")
}

// GetByID returns a non-deleted store.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	var row storeRow
	err := getOne(ctx, r.db, &row, query.From(m_store.TableName).
		Select(m_store.Columns...).
		Where(query.Eq(m_store.StoreID, id)).
		Where(query.IsNull(m_store.DeletedAt)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	return row.toDomain(), nil
}

func (r *StoreRepo) ExistsAddress(ctx context.Context, centreID, address, excludeID string) (bool, error) {
	b := query.From(m_store.TableName).
		Where(query.Eq(m_store.CentreID, centreID)).
		Where(query.Eq(m_store.Address, address))
	if excludeID != "" {
		b = b.Where(query.Ne(m_store.StoreID, excludeID))
	}
	n, err := count(ctx, r.db, b)
	if err != nil {
		return false, fmt.Errorf("failed to check store address: %w", err)
	}
	return n > 0, nil
}

func (r *StoreRepo) ListByCentre(ctx context.Context, centreID string) ([]*domain.Store, error) {
	var rows []storeRow
	err := selectAll(ctx, r.db, &rows, query.From(m_store.TableName).
		Select(m_store.Columns...).
		Where(query.Eq(m_store.CentreID, centreID)).
		Where(query.IsNull(m_store.DeletedAt)).
		OrderBy(m_store.Name, query.Asc))
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return storesFromRows(rows), nil
}

// ListEnrolled joins stores with their enabled link to the campaign.
func (r *StoreRepo) ListEnrolled(ctx context.Context, centreID, campaignID string) ([]*domain.Store, error) {
	cols := make([]string, 0, len(m_store.Columns))
	for _, c := range m_store.Columns {
		cols = append(cols, "s."+c)
	}
	from := fmt.Sprintf("%s s JOIN %s e ON e.%s = s.%s",
		m_store.TableName, m_enrollment.TableName, m_enrollment.StoreID, m_store.StoreID)

	var rows []storeRow
	err := selectAll(ctx, r.db, &rows, query.From(from).
		Select(cols...).
		Where(query.Eq("s."+m_store.CentreID, centreID)).
		Where(query.IsNull("s."+m_store.DeletedAt)).
		Where(query.Eq("e."+m_enrollment.CampaignID, campaignID)).
		Where(query.Eq("e."+m_enrollment.Enabled, true)).
		OrderBy("s."+m_store.Name, query.Asc))
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled stores: %w", err)
	}
	return storesFromRows(rows), nil
}

type centreRow struct {
	CentreID    string         `db:"centre_id"`
	Name        string         `db:"name"`
	Address     string         `db:"address"`
	Phone       sql.NullString `db:"phone"`
	Email       sql.NullString `db:"email"`
	ExternalRef sql.NullString `db:"external_ref"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   sql.NullTime   `db:"deleted_at"`
}

func (row centreRow) toDomain() *domain.Centre {
	return &domain.Centre{
		ID:          row.CentreID,
		Name:        row.Name,
		Address:     row.Address,
		Phone:       row.Phone.String,
		Email:       row.Email.String,
		ExternalRef: row.ExternalRef.String,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
		DeletedAt:   timePtr(row.DeletedAt),
	}
}

// CentreRepo implements CentreRepository on sqlx.
type CentreRepo struct {
	db *sqlx.DB
}

// NewCentreRepo creates a new CentreRepo.
func NewCentreRepo(db *sqlx.DB) *CentreRepo {
	return &CentreRepo{db: db}
}

var _ contracts.CentreRepository = (*CentreRepo)(nil)

// Create inserts a centre. A race past the use case checks surfaces as a
// duplicate email.
func (r *CentreRepo) Create(ctx context.Context, c *domain.Centre) error {
	row := centreRow{
		CentreID:    c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Phone:       nullString(c.Phone),
		Email:       nullString(c.Email),
		ExternalRef: nullString(c.ExternalRef),
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
		DeletedAt:   nullTime(c.DeletedAt),
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, namedInsert(m_centre.TableName, m_centre.Columns), row)
	return writeError(err, domain.ErrDuplicateEmail, "insert centre")
}

func (r *CentreRepo) GetByID(ctx context.Context, id string) (*domain.Centre, error) {
	var row centreRow
	err := getOne(ctx, r.db, &row, query.From(m_centre.TableName).
		Select(m_centre.Columns...).
		Where(query.Eq(m_centre.CentreID, id)).
		Where(query.IsNull(m_centre.DeletedAt)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCentreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read centre: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CentreRepo) List(ctx context.Context) ([]*domain.Centre, error) {
	var rows []centreRow
	err := selectAll(ctx, r.db, &rows, query.From(m_centre.TableName).
		Select(m_centre.Columns...).
		Where(query.IsNull(m_centre.DeletedAt)).
		OrderBy(m_centre.Name, query.Asc))
	if err != nil {
		return nil, fmt.Errorf("failed to list centres: %w", err)
	}
	out := make([]*domain.Centre, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CentreRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	n, err := count(ctx, r.db, query.From(m_centre.TableName).Where(query.Eq(m_centre.Email, email)))
	return n > 0, err
}

func (r *CentreRepo) ExistsExternalRef(ctx context.Context, ref string) (bool, error) {
	n, err := count(ctx, r.db, query.From(m_centre.TableName).Where(query.Eq(m_centre.ExternalRef, ref)))
	return n > 0, err
}

type productRow struct {
	ProductID string       `db:"product_id"`
	Barcode   string       `db:"barcode"`
	Family    string       `db:"family"`
	SubFamily string       `db:"sub_family"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

func (row productRow) toDomain() *domain.Product {
	return &domain.Product{
		ID:        row.ProductID,
		Barcode:   row.Barcode,
		Family:    row.Family,
		SubFamily: row.SubFamily,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
		DeletedAt: timePtr(row.DeletedAt),
	}
}

// ProductRepo implements ProductRepository on sqlx.
type ProductRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(db *sqlx.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

var _ contracts.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	row := productRow{
		ProductID: p.ID,
		Barcode:   p.Barcode,
		Family:    p.Family,
		SubFamily: p.SubFamily,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
		DeletedAt: nullTime(p.DeletedAt),
	}
	_, err := sqlx.NamedExecContext(ctx, r.db, namedInsert(m_product.TableName, m_product.Columns), row)
	return writeError(err, domain.ErrDuplicateBarcode, "insert product")
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getWhere(ctx, query.Eq(m_product.ProductID, id))
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	return r.getWhere(ctx, query.Eq(m_product.Barcode, barcode))
}

func (r *ProductRepo) getWhere(ctx context.Context, cond query.Condition) (*domain.Product, error) {
	var row productRow
	err := getOne(ctx, r.db, &row, query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(cond).
		Where(query.IsNull(m_product.DeletedAt)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ProductRepo) List(ctx context.Context, offset, limit int) ([]*domain.Product, int64, error) {
	base := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.IsNull(m_product.DeletedAt))

	total, err := count(ctx, r.db, base)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var rows []productRow
	err = selectAll(ctx, r.db, &rows, base.
		OrderBy(m_product.Family, query.Asc).
		OrderBy(m_product.SubFamily, query.Asc).
		OrderBy(m_product.Barcode, query.Asc).
		Limit(int64(limit)).
		Offset(int64(offset)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	out := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}
