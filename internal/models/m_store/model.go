package m_store

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the stores table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a store.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, data.values())
}

// ReplaceMut creates a mutation overwriting every column of an existing
// store.
func (m *Model) ReplaceMut(data *Data) *spanner.Mutation {
	return spanner.Update(TableName, Columns, data.values())
}
