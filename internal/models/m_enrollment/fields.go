package m_enrollment

// Field name constants for the enrollments table.
const (
	TableName = "enrollments"

	// IndexCampaignStore is the unique (campaign_id, store_id) index.
	IndexCampaignStore = "idx_enrollments_campaign_store"

	EnrollmentID = "enrollment_id"
	CampaignID   = "campaign_id"
	StoreID      = "store_id"
	Enabled      = "enabled"
	StartAt      = "start_at"
	EndAt        = "end_at"
	GraceUntil   = "grace_until"
	ValidatedAt  = "validated_at"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	EnrollmentID,
	CampaignID,
	StoreID,
	Enabled,
	StartAt,
	EndAt,
	GraceUntil,
	ValidatedAt,
	CreatedAt,
	UpdatedAt,
}
