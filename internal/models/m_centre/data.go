package m_centre

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the centres table.
type Data struct {
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
