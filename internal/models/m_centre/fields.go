package m_centre

// Field name constants for the centres table.
const (
	TableName = "centres"

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
var Columns = []string{CentreID, Name, Address, Phone, Email, ExternalRef, CreatedAt, UpdatedAt, DeletedAt}
