package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the products table.
type Data struct {
	ProductID string           `spanner:"product_id"`
	Barcode   string           `spanner:"barcode"`
	Family    string           `spanner:"family"`
	SubFamily string           `spanner:"sub_family"`
	CreatedAt time.Time        `spanner:"created_at"`
	UpdatedAt time.Time        `spanner:"updated_at"`
	DeletedAt spanner.NullTime `spanner:"deleted_at"`
}
