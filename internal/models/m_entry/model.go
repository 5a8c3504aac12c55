package m_entry

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for the weight_entries table. Entries are
// append-only so only inserts are exposed.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting an entry.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.EntryID,
		data.CampaignID,
		data.StoreID,
		data.ProductID,
		data.CentreID,
		data.Weight,
		data.CreatedAt,
	})
}
