package domain

import "time"

// EnrollmentWindow holds the per-store date overrides. They are stored and
// returned but the eligibility resolver only looks at the campaign window.
type EnrollmentWindow struct {
	StartAt    *time.Time
	EndAt      *time.Time
	GraceUntil *time.Time
}

// Enrollment is the opt-in link between a store and a campaign.
type Enrollment struct {
	id          string
	campaignID  string
	storeID     string
	enabled     bool
	window      EnrollmentWindow
	validatedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// NewEnrollment links a store to a campaign.
func NewEnrollment(id, campaignID, storeID string, enabled bool, now time.Time) *Enrollment {
	e := &Enrollment{
		id:         id,
		campaignID: campaignID,
		storeID:    storeID,
		enabled:    enabled,
		createdAt:  now,
		updatedAt:  now,
		changes:    NewChangeTracker(),
		events:     make([]DomainEvent, 0),
	}
	e.recordToggle(now)
	return e
}

// ReconstructEnrollment rebuilds an enrollment from storage.
func ReconstructEnrollment(
	id, campaignID, storeID string,
	enabled bool,
	window EnrollmentWindow,
	validatedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Enrollment {
	return &Enrollment{
		id:          id,
		campaignID:  campaignID,
		storeID:     storeID,
		enabled:     enabled,
		window:      window,
		validatedAt: validatedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}
}

func (e *Enrollment) ID() string                  { return e.id }
func (e *Enrollment) CampaignID() string          { return e.campaignID }
func (e *Enrollment) StoreID() string             { return e.storeID }
func (e *Enrollment) Enabled() bool               { return e.enabled }
func (e *Enrollment) Window() EnrollmentWindow    { return e.window }
func (e *Enrollment) ValidatedAt() *time.Time     { return copyTime(e.validatedAt) }
func (e *Enrollment) CreatedAt() time.Time        { return e.createdAt }
func (e *Enrollment) UpdatedAt() time.Time        { return e.updatedAt }
func (e *Enrollment) Changes() *ChangeTracker     { return e.changes }
func (e *Enrollment) DomainEvents() []DomainEvent { return e.events }

// SetEnabled flips the opt-in flag. It is a no-op when unchanged.
func (e *Enrollment) SetEnabled(enabled bool, now time.Time) bool {
	if e.enabled == enabled {
		return false
	}
	e.enabled = enabled
	e.updatedAt = now
	e.changes.MarkDirty(FieldEnabled)
	e.recordToggle(now)
	return true
}

// SetWindow replaces the override dates.
func (e *Enrollment) SetWindow(w EnrollmentWindow, now time.Time) error {
	if w.StartAt != nil && w.EndAt != nil && w.StartAt.After(*w.EndAt) {
		return ErrInvalidEnrollmentWindow
	}
	e.window = EnrollmentWindow{
		StartAt:    copyTime(w.StartAt),
		EndAt:      copyTime(w.EndAt),
		GraceUntil: copyTime(w.GraceUntil),
	}
	e.updatedAt = now
	e.changes.MarkDirty(FieldStartAt, FieldEndAt, FieldGraceUntil)
	return nil
}

// Validate stamps the final validation of the store's participation.
func (e *Enrollment) Validate(now time.Time) error {
	if e.validatedAt != nil {
		return ErrEnrollmentValidated
	}
	e.validatedAt = &now
	e.updatedAt = now
	e.changes.MarkDirty(FieldValidatedAt)
	e.recordEvent(&EnrollmentValidatedEvent{
		EnrollmentID: e.id,
		CampaignID:   e.campaignID,
		StoreID:      e.storeID,
		ValidatedAt:  now,
	})
	return nil
}

// ClearEvents clears events and dirty markers after a commit.
func (e *Enrollment) ClearEvents() {
	e.events = make([]DomainEvent, 0)
	e.changes.Clear()
}

func (e *Enrollment) recordToggle(now time.Time) {
	e.recordEvent(&EnrollmentToggledEvent{
		EnrollmentID: e.id,
		CampaignID:   e.campaignID,
		StoreID:      e.storeID,
		Enabled:      e.enabled,
		ToggledAt:    now,
	})
}

func (e *Enrollment) recordEvent(event DomainEvent) {
	e.events = append(e.events, event)
}
