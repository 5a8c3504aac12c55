package m_centre

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the centres table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a centre. Unique null-filtered
// indexes on email and external_ref reject duplicates.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.CentreID,
		data.Name,
		data.Address,
		data.Phone,
		data.Email,
		data.ExternalRef,
		data.CreatedAt,
		data.UpdatedAt,
		data.DeletedAt,
	})
}
