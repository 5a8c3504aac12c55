package m_store

// Field name constants for the stores table.
const (
	TableName = "stores"

	StoreID     = "store_id"
	CentreID    = "centre_id"
	Name        = "name"
	Address     = "address"
	Phone       = "phone"
	Email       = "email"
	ExternalRef = "external_ref"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
	DeletedAt   = "deleted_at"
)

// Columns lists every column in Data order.
var Columns = []string{StoreID, CentreID, Name, Address, Phone, Email, ExternalRef, CreatedAt, UpdatedAt, DeletedAt}
