package m_campaign

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the campaigns table.
type Data struct {
	CampaignID     string            `spanner:"campaign_id"`
	Year           int64             `spanner:"year"`
	ActiveYear     spanner.NullInt64 `spanner:"active_year"`
	Title          string            `spanner:"title"`
	Slug           string            `spanner:"slug"`
	DefaultStartAt spanner.NullTime  `spanner:"default_start_at"`
	DefaultEndAt   spanner.NullTime  `spanner:"default_end_at"`
	GraceUntil     spanner.NullTime  `spanner:"grace_until"`
	LockedAt       spanner.NullTime  `spanner:"locked_at"`
	Status         string            `spanner:"status"`
	CreatedAt      time.Time         `spanner:"created_at"`
	UpdatedAt      time.Time         `spanner:"updated_at"`
	DeletedAt      spanner.NullTime  `spanner:"deleted_at"`
}
