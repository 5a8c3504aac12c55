package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinYear = 2020
	MaxYear = 2100
)

// Schedule is the default time window of a campaign. Any bound may be unset
// while the campaign is still a draft. Bounds are not ordered against each
// other: the status engine gives every combination a status (a grace date
// before the end simply archives the campaign once the end passes).
type Schedule struct {
	StartAt    *time.Time
	EndAt      *time.Time
	GraceUntil *time.Time
}

// CampaignInput carries the fields accepted on creation.
type CampaignInput struct {
	Year     int
	Title    string
	Slug     string
	Schedule Schedule
	LockedAt *time.Time
}

// CampaignPatch is a partial update. Nil fields keep their current value.
type CampaignPatch struct {
	Year       *int
	Title      *string
	Slug       *string
	StartAt    *time.Time
	EndAt      *time.Time
	GraceUntil *time.Time
	LockedAt   *time.Time
}

// Campaign is the aggregate root of a yearly collection drive.
type Campaign struct {
	id             string
	year           int
	title          string
	slug           string
	defaultStartAt *time.Time
	defaultEndAt   *time.Time
	graceUntil     *time.Time
	lockedAt       *time.Time
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// DefaultTitle is the title given to a campaign created without one.
func DefaultTitle(year int) string { return fmt.Sprintf("Collecte %d", year) }

// DefaultSlug is the slug given to a campaign created without one.
func DefaultSlug(year int) string { return fmt.Sprintf("collecte-%d", year) }

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return ErrInvalidYear
	}
	return nil
}

// NewCampaign creates a campaign. The status cache is seeded with the status
// computed at now.
func NewCampaign(id string, in CampaignInput, now time.Time) (*Campaign, error) {
	if err := validateYear(in.Year); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultTitle(in.Year)
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = DefaultSlug(in.Year)
	}

	c := &Campaign{
		id:             id,
		year:           in.Year,
		title:          title,
		slug:           slug,
		defaultStartAt: copyTime(in.Schedule.StartAt),
		defaultEndAt:   copyTime(in.Schedule.EndAt),
		graceUntil:     copyTime(in.Schedule.GraceUntil),
		lockedAt:       copyTime(in.LockedAt),
		createdAt:      now,
		updatedAt:      now,
		changes:        NewChangeTracker(),
		events:         make([]DomainEvent, 0),
	}
	c.status = ComputeStatus(c, now)

	c.recordEvent(&CampaignCreatedEvent{
		CampaignID: c.id,
		Year:       c.year,
		Title:      c.title,
		Slug:       c.slug,
		StartAt:    copyTime(c.defaultStartAt),
		EndAt:      copyTime(c.defaultEndAt),
		GraceUntil: copyTime(c.graceUntil),
		Status:     c.status,
		CreatedAt:  now,
	})

	return c, nil
}

// ReconstructCampaign rebuilds a campaign from storage.
func ReconstructCampaign(
	id string,
	year int,
	title, slug string,
	schedule Schedule,
	lockedAt *time.Time,
	status Status,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *Campaign {
	return &Campaign{
		id:             id,
		year:           year,
		title:          title,
		slug:           slug,
		defaultStartAt: schedule.StartAt,
		defaultEndAt:   schedule.EndAt,
		graceUntil:     schedule.GraceUntil,
		lockedAt:       lockedAt,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		deletedAt:      deletedAt,
		changes:        NewChangeTracker(),
		events:         make([]DomainEvent, 0),
	}
}

// Getters
func (c *Campaign) ID() string                 { return c.id }
func (c *Campaign) Year() int                  { return c.year }
func (c *Campaign) Title() string              { return c.title }
func (c *Campaign) Slug() string               { return c.slug }
func (c *Campaign) DefaultStartAt() *time.Time { return copyTime(c.defaultStartAt) }
func (c *Campaign) DefaultEndAt() *time.Time   { return copyTime(c.defaultEndAt) }
func (c *Campaign) GraceUntil() *time.Time     { return copyTime(c.graceUntil) }
func (c *Campaign) LockedAt() *time.Time       { return copyTime(c.lockedAt) }
func (c *Campaign) StoredStatus() Status       { return c.status }
func (c *Campaign) CreatedAt() time.Time       { return c.createdAt }
func (c *Campaign) UpdatedAt() time.Time       { return c.updatedAt }
func (c *Campaign) DeletedAt() *time.Time      { return copyTime(c.deletedAt) }
func (c *Campaign) IsDeleted() bool            { return c.deletedAt != nil }
func (c *Campaign) Changes() *ChangeTracker    { return c.changes }
func (c *Campaign) DomainEvents() []DomainEvent {
	return c.events
}

// Schedule returns a copy of the default window.
func (c *Campaign) Schedule() Schedule {
	return Schedule{
		StartAt:    copyTime(c.defaultStartAt),
		EndAt:      copyTime(c.defaultEndAt),
		GraceUntil: copyTime(c.graceUntil),
	}
}

// StatusAt is the status derived at now. Reads always go through here, never
// through the stored cache.
func (c *Campaign) StatusAt(now time.Time) Status {
	return ComputeStatus(c, now)
}

// Contains reports whether at falls inside [start, end].
func (c *Campaign) Contains(at time.Time) bool {
	if c.defaultStartAt == nil || c.defaultEndAt == nil {
		return false
	}
	return !at.Before(*c.defaultStartAt) && !at.After(*c.defaultEndAt)
}

// Apply merges a partial update. It returns true when anything changed.
// The caller is responsible for the year uniqueness check when the year
// changes.
func (c *Campaign) Apply(p CampaignPatch, now time.Time) (bool, error) {
	if c.deletedAt != nil {
		return false, ErrCampaignArchived
	}

	next := c.Schedule()
	if p.StartAt != nil {
		next.StartAt = copyTime(p.StartAt)
	}
	if p.EndAt != nil {
		next.EndAt = copyTime(p.EndAt)
	}
	if p.GraceUntil != nil {
		next.GraceUntil = copyTime(p.GraceUntil)
	}

	var touched []Field

	if p.Year != nil && *p.Year != c.year {
		if err := validateYear(*p.Year); err != nil {
			return false, err
		}
		c.year = *p.Year
		touched = append(touched, FieldYear)
	}
	if p.Title != nil {
		if t := strings.TrimSpace(*p.Title); t != "" && t != c.title {
			c.title = t
			touched = append(touched, FieldTitle)
		}
	}
	if p.Slug != nil {
		if s := strings.TrimSpace(*p.Slug); s != "" && s != c.slug {
			c.slug = s
			touched = append(touched, FieldSlug)
		}
	}
	if !sameTime(next.StartAt, c.defaultStartAt) {
		c.defaultStartAt = next.StartAt
		touched = append(touched, FieldStartAt)
	}
	if !sameTime(next.EndAt, c.defaultEndAt) {
		c.defaultEndAt = next.EndAt
		touched = append(touched, FieldEndAt)
	}
	if !sameTime(next.GraceUntil, c.graceUntil) {
		c.graceUntil = next.GraceUntil
		touched = append(touched, FieldGraceUntil)
	}
	if p.LockedAt != nil && !sameTime(p.LockedAt, c.lockedAt) {
		c.lockedAt = copyTime(p.LockedAt)
		touched = append(touched, FieldLockedAt)
	}

	if len(touched) == 0 {
		return false, nil
	}

	c.changes.MarkDirty(touched...)
	c.updatedAt = now
	c.recordEvent(&CampaignUpdatedEvent{
		CampaignID: c.id,
		Fields:     touched,
		UpdatedAt:  now,
	})
	return true, nil
}

// MarkDeleted soft deletes the campaign. The status cache is left to the
// refresher.
func (c *Campaign) MarkDeleted(now time.Time) error {
	if c.deletedAt != nil {
		return ErrCampaignArchived
	}
	c.deletedAt = &now
	c.updatedAt = now
	c.changes.MarkDirty(FieldDeletedAt)
	c.recordEvent(&CampaignArchivedEvent{
		CampaignID: c.id,
		Year:       c.year,
		DeletedAt:  now,
	})
	return nil
}

// Refresh recomputes the status at now and updates the cache when it
// differs. It reports the new status and whether it changed.
func (c *Campaign) Refresh(now time.Time) (Status, bool) {
	computed := ComputeStatus(c, now)
	if computed == c.status {
		return computed, false
	}

	previous := c.status
	c.status = computed
	c.updatedAt = now
	c.changes.MarkDirty(FieldStatus)
	c.recordEvent(&CampaignStatusChangedEvent{
		CampaignID: c.id,
		From:       previous,
		To:         computed,
		ComputedAt: now,
	})
	return computed, true
}

// ClearEvents clears all domain events and dirty markers, called after a
// successful commit.
func (c *Campaign) ClearEvents() {
	c.events = make([]DomainEvent, 0)
	c.changes.Clear()
}

func (c *Campaign) recordEvent(event DomainEvent) {
	c.events = append(c.events, event)
}
