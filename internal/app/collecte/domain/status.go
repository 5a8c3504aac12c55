package domain

import (
	"fmt"
	"time"
)

// Status is the derived lifecycle state of a campaign.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusScheduled Status = "SCHEDULED"
	StatusActive    Status = "ACTIVE"
	StatusClosed    Status = "CLOSED"
	StatusArchived  Status = "ARCHIVED"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusActive, StatusClosed, StatusArchived:
		return true
	}
	return false
}

// ParseStatus converts a stored status string. An empty string is accepted
// and yields "" so the fallback rule can treat it as unset.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if s == "" || st.IsValid() {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ComputeStatus derives the status of c at now. The first matching rule
// wins:
//
//  1. soft deleted                                  -> ARCHIVED
//  2. start or end missing                          -> DRAFT
//  3. now < start                                   -> SCHEDULED
//  4. start <= now <= end                           -> ACTIVE
//  5. grace set and end < now <= grace              -> CLOSED
//  6. now > grace (or end when grace is unset)      -> ARCHIVED
//  7. otherwise the stored status, DRAFT when unset
//
// All bounds are inclusive. The function never reads the wall clock.
func ComputeStatus(c *Campaign, now time.Time) Status {
	return computeStatus(c.defaultStartAt, c.defaultEndAt, c.graceUntil, c.deletedAt, c.status, now)
}

func computeStatus(start, end, grace, deletedAt *time.Time, stored Status, now time.Time) Status {
	if deletedAt != nil {
		return StatusArchived
	}
	if start == nil || end == nil {
		return StatusDraft
	}
	if now.Before(*start) {
		return StatusScheduled
	}
	if !now.After(*end) {
		return StatusActive
	}
	if grace != nil && !now.After(*grace) {
		return StatusClosed
	}

	closeAt := *end
	if grace != nil {
		closeAt = *grace
	}
	if now.After(closeAt) {
		return StatusArchived
	}

	if stored == "" {
		return StatusDraft
	}
	return stored
}
