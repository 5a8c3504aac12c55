package contracts

import (
	"context"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// StoreRepository persists stores.
type StoreRepository interface {
	// Create inserts a store. A duplicate (centre, address) is reported as
	// domain.ErrDuplicateAddress.
	Create(ctx context.Context, s *domain.Store) error
	Update(ctx context.Context, s *domain.Store) error
	GetByID(ctx context.Context, id string) (*domain.Store, error)

	// ExistsAddress reports whether another store of the centre (other than
	// excludeID) uses the normalised address.
	ExistsAddress(ctx context.Context, centreID, address, excludeID string) (bool, error)

	ListByCentre(ctx context.Context, centreID string) ([]*domain.Store, error)

	// ListEnrolled returns the stores of a centre holding an enabled link to
	// the campaign.
	ListEnrolled(ctx context.Context, centreID, campaignID string) ([]*domain.Store, error)
}

// CentreRepository persists centres.
type CentreRepository interface {
	Create(ctx context.Context, c *domain.Centre) error
	GetByID(ctx context.Context, id string) (*domain.Centre, error)
	List(ctx context.Context) ([]*domain.Centre, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	ExistsExternalRef(ctx context.Context, ref string) (bool, error)
}

// ProductRepository persists the product catalogue.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Product, int64, error)
}
