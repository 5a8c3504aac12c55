package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
	"github.com/light-bringer/collecte-service/internal/models/m_centre"
	"github.com/light-bringer/collecte-service/internal/models/m_enrollment"
	"github.com/light-bringer/collecte-service/internal/models/m_product"
	"github.com/light-bringer/collecte-service/internal/models/m_store"
	"github.com/light-bringer/collecte-service/internal/pkg/committer"
	"github.com/light-bringer/collecte-service/internal/pkg/query"
)

// StoreRepo implements StoreRepository for Spanner.
type StoreRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_store.Model
}

// NewStoreRepo creates a new StoreRepo.
func NewStoreRepo(client *spanner.Client, c *committer.Committer) *StoreRepo {
	return &StoreRepo{client: client, committer: c, model: m_store.NewModel()}
}

var _ contracts.StoreRepository = (*StoreRepo)(nil)

func (r *StoreRepo) Create(ctx context.Context, s *domain.Store) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(storeToData(s)))
	return commitError(r.committer.Apply(ctx, plan), domain.ErrDuplicateAddress, "insert store")
}

func (r *StoreRepo) Update(ctx context.Context, s *domain.Store) error {
	plan := committer.NewPlan()
	plan.Add(r.model.ReplaceMut(storeToData(s)))
	return commitError(r.committer.Apply(ctx, plan), domain.ErrDuplicateAddress, "update store")
}

// GetByID returns a non-deleted store.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	row, err := r.client.Single().ReadRow(ctx, m_store.TableName, spanner.Key{id}, m_store.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	s, err := decodeStore(row)
	if err != nil {
		return nil, err
	}
	if s.DeletedAt != nil {
		return nil, domain.ErrStoreNotFound
	}
	return s, nil
}

func (r *StoreRepo) ExistsAddress(ctx context.Context, centreID, address, excludeID string) (bool, error) {
	b := query.From(m_store.TableName).
		Where(query.Eq(m_store.CentreID, centreID)).
		Where(query.Eq(m_store.Address, address))
	if excludeID != "" {
		b = b.Where(query.Ne(m_store.StoreID, excludeID))
	}
	ok, err := exists(ctx, r.client.Single(), b.Count().Build())
	if err != nil {
		return false, fmt.Errorf("failed to check store address: %w", err)
	}
	return ok, nil
}

func (r *StoreRepo) ListByCentre(ctx context.Context, centreID string) ([]*domain.Store, error) {
	stmt := query.From(m_store.TableName).
		Select(m_store.Columns...).
		Where(query.Eq(m_store.CentreID, centreID)).
		Where(query.IsNull(m_store.DeletedAt)).
		OrderBy(m_store.Name, query.Asc).
		Build()
	stores, err := queryAll(ctx, r.client.Single(), stmt, decodeStore)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// ListEnrolled joins stores with their enabled link to the campaign.
func (r *StoreRepo) ListEnrolled(ctx context.Context, centreID, campaignID string) ([]*domain.Store, error) {
	cols := make([]string, 0, len(m_store.Columns))
	for _, c := range m_store.Columns {
		cols = append(cols, "s."+c)
	}
	from := fmt.Sprintf("%s s JOIN %s e ON e.%s = s.%s",
		m_store.TableName, m_enrollment.TableName, m_enrollment.StoreID, m_store.StoreID)

	stmt := query.From(from).
		Select(cols...).
		Where(query.Eq("s."+m_store.CentreID, centreID)).
		Where(query.IsNull("s."+m_store.DeletedAt)).
		Where(query.Eq("e."+m_enrollment.CampaignID, campaignID)).
		Where(query.Eq("e."+m_enrollment.Enabled, true)).
		OrderBy("s."+m_store.Name, query.Asc).
		Build()

	stores, err := queryAll(ctx, r.client.Single(), stmt, decodeStore)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled stores: %w", err)
	}
	return stores, nil
}

func storeToData(s *domain.Store) *m_store.Data {
	return &m_store.Data{
		StoreID:     s.ID,
		CentreID:    s.CentreID,
		Name:        s.Name,
		Address:     s.Address,
		Phone:       nullString(s.Phone),
		Email:       nullString(s.Email),
		ExternalRef: nullString(s.ExternalRef),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		DeletedAt:   nullTime(s.DeletedAt),
	}
}

func decodeStore(row *spanner.Row) (*domain.Store, error) {
	var d m_store.Data
	if err := row.ToStruct(&d); err != nil {
		return nil, fmt.Errorf("failed to parse store: %w", err)
	}
	return &domain.Store{
		ID:          d.StoreID,
		CentreID:    d.CentreID,
		Name:        d.Name,
		Address:     d.Address,
		Phone:       d.Phone.StringVal,
		Email:       d.Email.StringVal,
		ExternalRef: d.ExternalRef.StringVal,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
		DeletedAt:   timePtr(d.DeletedAt),
	}, nil
}

// CentreRepo implements CentreRepository for Spanner.
type CentreRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_centre.Model
}

// NewCentreRepo creates a new CentreRepo.
func NewCentreRepo(client *spanner.Client, c *committer.Committer) *CentreRepo {
	return &CentreRepo{client: client, committer: c, model: m_centre.NewModel()}
}

var _ contracts.CentreRepository = (*CentreRepo)(nil)

// Create inserts a centre. The use case checks email and external
// reference separately; a race that reaches the unique indexes is reported
// as a duplicate email.
func (r *CentreRepo) Create(ctx context.Context, c *domain.Centre) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(&m_centre.Data{
		CentreID:    c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Phone:       nullString(c.Phone),
		Email:       nullString(c.Email),
		ExternalRef: nullString(c.ExternalRef),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   nullTime(c.DeletedAt),
	}))
	return commitError(r.committer.Apply(ctx, plan), domain.ErrDuplicateEmail, "insert centre")
}

func (r *CentreRepo) GetByID(ctx context.Context, id string) (*domain.Centre, error) {
	row, err := r.client.Single().ReadRow(ctx, m_centre.TableName, spanner.Key{id}, m_centre.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCentreNotFound
		}
		return nil, fmt.Errorf("failed to read centre: %w", err)
	}
	c, err := decodeCentre(row)
	if err != nil {
		return nil, err
	}
	if c.DeletedAt != nil {
		return nil, domain.ErrCentreNotFound
	}
	return c, nil
}

func (r *CentreRepo) List(ctx context.Context) ([]*domain.Centre, error) {
	stmt := query.From(m_centre.TableName).
		Select(m_centre.Columns...).
		Where(query.IsNull(m_centre.DeletedAt)).
		OrderBy(m_centre.Name, query.Asc).
		Build()
	centres, err := queryAll(ctx, r.client.Single(), stmt, decodeCentre)
	if err != nil {
		return nil, fmt.Errorf("failed to list centres: %w", err)
	}
	return centres, nil
}

func (r *CentreRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.client.Single(),
		query.From(m_centre.TableName).Where(query.Eq(m_centre.Email, email)).Count().Build())
}

func (r *CentreRepo) ExistsExternalRef(ctx context.Context, ref string) (bool, error) {
	return exists(ctx, r.client.Single(),
		query.From(m_centre.TableName).Where(query.Eq(m_centre.ExternalRef, ref)).Count().Build())
}

func decodeCentre(row *spanner.Row) (*domain.Centre, error) {
	var d m_centre.Data
	if err := row.ToStruct(&d); err != nil {
		return nil, fmt.Errorf("failed to parse centre: %w", err)
	}
	return &domain.Centre{
		ID:          d.CentreID,
		Name:        d.Name,
		Address:     d.Address,
		Phone:       d.Phone.StringVal,
		Email:       d.Email.StringVal,
		ExternalRef: d.ExternalRef.StringVal,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
		DeletedAt:   timePtr(d.DeletedAt),
	}, nil
}

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, c *committer.Committer) *ProductRepo {
	return &ProductRepo{client: client, committer: c, model: m_product.NewModel()}
}

var _ contracts.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	plan := committer.NewPlan()
	plan.Add(r.model.InsertMut(&m_product.Data{
		ProductID: p.ID,
		Barcode:   p.Barcode,
		Family:    p.Family,
		SubFamily: p.SubFamily,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		DeletedAt: nullTime(p.DeletedAt),
	}))
	return commitError(r.committer.Apply(ctx, plan), domain.ErrDuplicateBarcode, "insert product")
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}
	p, err := decodeProduct(row)
	if err != nil {
		return nil, err
	}
	if p.DeletedAt != nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.Eq(m_product.Barcode, barcode)).
		Where(query.IsNull(m_product.DeletedAt)).
		Limit(1).
		Build()
	products, err := queryAll(ctx, r.client.Single(), stmt, decodeProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by barcode: %w", err)
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return products[0], nil
}

func (r *ProductRepo) List(ctx context.Context, offset, limit int) ([]*domain.Product, int64, error) {
	base := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.IsNull(m_product.DeletedAt))

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := queryCount(ctx, txn, base.Count().Build())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	stmt := base.OrderBy(m_product.Family, query.Asc).
		OrderBy(m_product.SubFamily, query.Asc).
		OrderBy(m_product.Barcode, query.Asc).
		Limit(int64(limit)).
		Offset(int64(offset)).
		Build()
	products, err := queryAll(ctx, txn, stmt, decodeProduct)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func decodeProduct(row *spanner.Row) (*domain.Product, error) {
	var d m_product.Data
	if err := row.ToStruct(&d); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return &domain.Product{
		ID:        d.ProductID,
		Barcode:   d.Barcode,
		Family:    d.Family,
		SubFamily: d.SubFamily,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
		DeletedAt: timePtr(d.DeletedAt),
	}, nil
}
