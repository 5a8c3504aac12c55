package m_store

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the stores table.
type Data struct {
	StoreID     string             `spanner:"store_id"`
	CentreID    string             `spanner:"centre_id"`
	Name        string             `spanner:"name"`
	Address     string             `spanner:"address"`
	Phone       spanner.NullString `spanner:"phone"`
	Email       spanner.NullString `spanner:"email"`
	ExternalRef spanner.NullString `spanner:"external_ref"`
	CreatedAt   time.Time          `spanner:"created_at"`
	UpdatedAt   time.Time          `spanner:"updated_at"`
	DeletedAt   spanner.NullTime   `spanner:"deleted_at"`
}

func (d *Data) values() []interface{} {
	return []interface{}{
		d.StoreID, d.CentreID, d.Name, d.Address, d.Phone, d.Email, d.ExternalRef,
		d.CreatedAt, d.UpdatedAt, d.DeletedAt,
	}
}
