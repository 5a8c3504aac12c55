package m_enrollment

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the enrollments table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a link.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.EnrollmentID,
			data.CampaignID,
			data.StoreID,
			data.Enabled,
			data.StartAt,
			data.EndAt,
			data.GraceUntil,
			data.ValidatedAt,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a mutation updating the given columns.
func (m *Model) UpdateMut(enrollmentID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := []string{EnrollmentID}
	values := []interface{}{enrollmentID}
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
