package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ProductID = "product_id"
	Barcode   = "barcode"
	Family    = "family"
	SubFamily = "sub_family"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
	DeletedAt = "deleted_at"
)

// Columns lists every column in Data order.
var Columns = []string{ProductID, Barcode, Family, SubFamily, CreatedAt, UpdatedAt, DeletedAt}
