package m_entry

// Field name constants for the weight_entries table.
const (
	TableName = "weight_entries"

	EntryID    = "entry_id"
	CampaignID = "campaign_id"
	StoreID    = "store_id"
	ProductID  = "product_id"
	CentreID   = "centre_id"
	Weight     = "weight"
	CreatedAt  = "created_at"
)

// Columns lists every column in Data order.
var Columns = []string{EntryID, CampaignID, StoreID, ProductID, CentreID, Weight, CreatedAt}
