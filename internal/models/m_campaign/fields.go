package m_campaign

// Field name constants for the campaigns table.
const (
	TableName = "campaigns"

	CampaignID     = "campaign_id"
	Year           = "year"
	ActiveYear     = "active_year"
	Title          = "title"
	Slug           = "slug"
	DefaultStartAt = "default_start_at"
	DefaultEndAt   = "default_end_at"
	GraceUntil     = "grace_until"
	LockedAt       = "locked_at"
	Status         = "status"
	CreatedAt      = "created_at"
	UpdatedAt      = "updated_at"
	DeletedAt      = "deleted_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	CampaignID,
	Year,
	ActiveYear,
	Title,
	Slug,
	DefaultStartAt,
	DefaultEndAt,
	GraceUntil,
	LockedAt,
	Status,
	CreatedAt,
	UpdatedAt,
	DeletedAt,
}
