package domain

import "time"

// DomainEvent is the base interface for all domain events. Events are
// persisted to the outbox in the same commit as the change they describe.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// Event type names as stored in outbox_events.event_type.
const (
	EventCampaignCreated       = "campaign.created"
	EventCampaignUpdated       = "campaign.updated"
	EventCampaignArchived      = "campaign.archived"
	EventCampaignStatusChanged = "campaign.status_changed"
	EventEntryRecorded         = "entry.recorded"
	EventEnrollmentToggled     = "enrollment.toggled"
	EventEnrollmentValidated   = "enrollment.validated"
)

// CampaignCreatedEvent is emitted when a campaign is created.
type CampaignCreatedEvent struct {
	CampaignID string     `json:"campaignId"`
	Year       int        `json:"year"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	StartAt    *time.Time `json:"defaultStartAt,omitempty"`
	EndAt      *time.Time `json:"defaultEndAt,omitempty"`
	GraceUntil *time.Time `json:"graceUntil,omitempty"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (e *CampaignCreatedEvent) EventType() string   { return EventCampaignCreated }
func (e *CampaignCreatedEvent) AggregateID() string { return e.CampaignID }

// CampaignUpdatedEvent lists the fields touched by a partial update.
type CampaignUpdatedEvent struct {
	CampaignID string    `json:"campaignId"`
	Fields     []Field   `json:"fields"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e *CampaignUpdatedEvent) EventType() string   { return EventCampaignUpdated }
func (e *CampaignUpdatedEvent) AggregateID() string { return e.CampaignID }

// CampaignArchivedEvent is emitted on soft delete.
type CampaignArchivedEvent struct {
	CampaignID string    `json:"campaignId"`
	Year       int       `json:"year"`
	DeletedAt  time.Time `json:"deletedAt"`
}

func (e *CampaignArchivedEvent) EventType() string   { return EventCampaignArchived }
func (e *CampaignArchivedEvent) AggregateID() string { return e.CampaignID }

// CampaignStatusChangedEvent is emitted when the refresher writes a new
// status to the cached column.
type CampaignStatusChangedEvent struct {
	CampaignID string    `json:"campaignId"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	ComputedAt time.Time `json:"computedAt"`
}

func (e *CampaignStatusChangedEvent) EventType() string   { return EventCampaignStatusChanged }
func (e *CampaignStatusChangedEvent) AggregateID() string { return e.CampaignID }

// EntryRecordedEvent is emitted for every weight entry.
type EntryRecordedEvent struct {
	EntryID    string    `json:"entryId"`
	CampaignID string    `json:"campaignId"`
	StoreID    string    `json:"storeId"`
	ProductID  string    `json:"productId"`
	CentreID   string    `json:"centreId"`
	Weight     float64   `json:"weight"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (e *EntryRecordedEvent) EventType() string   { return EventEntryRecorded }
func (e *EntryRecordedEvent) AggregateID() string { return e.EntryID }

// EnrollmentToggledEvent is emitted when a store opts in or out.
type EnrollmentToggledEvent struct {
	EnrollmentID string    `json:"enrollmentId"`
	CampaignID   string    `json:"campaignId"`
	StoreID      string    `json:"storeId"`
	Enabled      bool      `json:"enabled"`
	ToggledAt    time.Time `json:"toggledAt"`
}

func (e *EnrollmentToggledEvent) EventType() string   { return EventEnrollmentToggled }
func (e *EnrollmentToggledEvent) AggregateID() string { return e.EnrollmentID }

// EnrollmentValidatedEvent is emitted when a store's participation is
// validated.
type EnrollmentValidatedEvent struct {
	EnrollmentID string    `json:"enrollmentId"`
	CampaignID   string    `json:"campaignId"`
	StoreID      string    `json:"storeId"`
	ValidatedAt  time.Time `json:"validatedAt"`
}

func (e *EnrollmentValidatedEvent) EventType() string   { return EventEnrollmentValidated }
func (e *EnrollmentValidatedEvent) AggregateID() string { return e.EnrollmentID }
