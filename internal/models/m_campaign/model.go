package m_campaign

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the campaigns table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a campaign. Insert (not
// InsertOrUpdate) so the unique index on active_year rejects a second live
// campaign for the same year.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.CampaignID,
			data.Year,
			data.ActiveYear,
			data.Title,
			data.Slug,
			data.DefaultStartAt,
			data.DefaultEndAt,
			data.GraceUntil,
			data.LockedAt,
			data.Status,
			data.CreatedAt,
			data.UpdatedAt,
			data.DeletedAt,
		},
	)
}

// UpdateMut creates a mutation updating the given columns.
func (m *Model) UpdateMut(campaignID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, CampaignID)
	values = append(values, campaignID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
