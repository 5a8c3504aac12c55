package m_enrollment

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the enrollments table.
type Data struct {
	EnrollmentID string           `spanner:"enrollment_id"`
	CampaignID   string           `spanner:"campaign_id"`
	StoreID      string           `spanner:"store_id"`
	Enabled      bool             `spanner:"enabled"`
	StartAt      spanner.NullTime `spanner:"start_at"`
	EndAt        spanner.NullTime `spanner:"end_at"`
	GraceUntil   spanner.NullTime `spanner:"grace_until"`
	ValidatedAt  spanner.NullTime `spanner:"validated_at"`
	CreatedAt    time.Time        `spanner:"created_at"`
	UpdatedAt    time.Time        `spanner:"updated_at"`
}
