package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.ProductID,
		data.Barcode,
		data.Family,
		data.SubFamily,
		data.CreatedAt,
		data.UpdatedAt,
		data.DeletedAt,
	})
}

// DeleteMut creates a mutation hard deleting a product. Used by test
// cleanup only; the catalogue soft deletes.
func (m *Model) DeleteMut(productID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{productID})
}
