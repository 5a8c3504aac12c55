package domain

import (
	"math"
	"time"
)

// Entry is one recorded weight for a (campaign, store, product, centre).
// Entries are append-only.
type Entry struct {
	ID         string
	CampaignID string
	StoreID    string
	ProductID  string
	CentreID   string
	Weight     float64
	CreatedAt  time.Time
}

// NewEntry validates the weight and stamps the entry.
func NewEntry(id, campaignID, storeID, productID, centreID string, weight float64, now time.Time) (*Entry, error) {
	if math.IsInf(weight, 0) || !(weight > 0) {
		return nil, ErrInvalidWeight
	}
	return &Entry{
		ID:         id,
		CampaignID: campaignID,
		StoreID:    storeID,
		ProductID:  productID,
		CentreID:   centreID,
		Weight:     weight,
		CreatedAt:  now,
	}, nil
}

// RecordedEvent describes the entry for the outbox.
func (e *Entry) RecordedEvent() DomainEvent {
	return &EntryRecordedEvent{
		EntryID:    e.ID,
		CampaignID: e.CampaignID,
		StoreID:    e.StoreID,
		ProductID:  e.ProductID,
		CentreID:   e.CentreID,
		Weight:     e.Weight,
		CreatedAt:  e.CreatedAt,
	}
}
