package m_entry

import "time"

// Data represents a row of the weight_entries table.
type Data struct {
	EntryID    string    `spanner:"entry_id"`
	CampaignID string    `spanner:"campaign_id"`
	StoreID    string    `spanner:"store_id"`
	ProductID  string    `spanner:"product_id"`
	CentreID   string    `spanner:"centre_id"`
	Weight     float64   `spanner:"weight"`
	CreatedAt  time.Time `spanner:"created_at"`
}
