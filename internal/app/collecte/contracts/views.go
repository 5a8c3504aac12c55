package contracts

import (
	"encoding/json"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// TimeLayout is the ISO-8601 form used for every timestamp leaving the
// service.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in UTC using TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// FormatOptionalTime renders t or returns nil.
func FormatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

// CampaignView is the read shape of a campaign. Status is always computed
// at read time.
type CampaignView struct {
	ID             string  `json:"id"`
	Year           int     `json:"year"`
	Title          string  `json:"title"`
	Slug           string  `json:"slug"`
	DefaultStartAt *string `json:"defaultStartAt"`
	DefaultEndAt   *string `json:"defaultEndAt"`
	GraceUntil     *string `json:"graceUntil"`
	LockedAt       *string `json:"lockedAt"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
	DeletedAt      *string `json:"deletedAt"`
}

// NewCampaignView builds the view of c as seen at now.
func NewCampaignView(c *domain.Campaign, now time.Time) *CampaignView {
	return &CampaignView{
		ID:             c.ID(),
		Year:           c.Year(),
		Title:          c.Title(),
		Slug:           c.Slug(),
		DefaultStartAt: FormatOptionalTime(c.DefaultStartAt()),
		DefaultEndAt:   FormatOptionalTime(c.DefaultEndAt()),
		GraceUntil:     FormatOptionalTime(c.GraceUntil()),
		LockedAt:       FormatOptionalTime(c.LockedAt()),
		Status:         string(domain.ComputeStatus(c, now)),
		CreatedAt:      FormatTime(c.CreatedAt()),
		UpdatedAt:      FormatTime(c.UpdatedAt()),
		DeletedAt:      FormatOptionalTime(c.DeletedAt()),
	}
}

// CampaignPage is a page of campaign views.
type CampaignPage struct {
	Items []*CampaignView `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// EnrollmentView is the read shape of a campaign-store link.
type EnrollmentView struct {
	ID          string  `json:"id"`
	CampaignID  string  `json:"campaignId"`
	StoreID     string  `json:"storeId"`
	Enabled     bool    `json:"enabled"`
	StartAt     *string `json:"startAt"`
	EndAt       *string `json:"endAt"`
	GraceUntil  *string `json:"graceUntil"`
	ValidatedAt *string `json:"validatedAt"`
}

// NewEnrollmentView builds the view of e.
func NewEnrollmentView(e *domain.Enrollment) *EnrollmentView {
	w := e.Window()
	return &EnrollmentView{
		ID:          e.ID(),
		CampaignID:  e.CampaignID(),
		StoreID:     e.StoreID(),
		Enabled:     e.Enabled(),
		StartAt:     FormatOptionalTime(w.StartAt),
		EndAt:       FormatOptionalTime(w.EndAt),
		GraceUntil:  FormatOptionalTime(w.GraceUntil),
		ValidatedAt: FormatOptionalTime(e.ValidatedAt()),
	}
}

// EntryView is the created entry row.
type EntryView struct {
	ID         string  `json:"id"`
	CampaignID string  `json:"campaignId"`
	StoreID    string  `json:"storeId"`
	ProductID  string  `json:"productId"`
	CentreID   string  `json:"centreId"`
	Weight     float64 `json:"weight"`
	CreatedAt  string  `json:"createdAt"`
}

// NewEntryView builds the view of e.
func NewEntryView(e *domain.Entry) *EntryView {
	return &EntryView{
		ID:         e.ID,
		CampaignID: e.CampaignID,
		StoreID:    e.StoreID,
		ProductID:  e.ProductID,
		CentreID:   e.CentreID,
		Weight:     e.Weight,
		CreatedAt:  FormatTime(e.CreatedAt),
	}
}

// StoreView is the read shape of a store.
type StoreView struct {
	ID          string `json:"id"`
	CentreID    string `json:"centreId"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	ExternalRef string `json:"externalRef,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// NewStoreView builds the view of s.
func NewStoreView(s *domain.Store) *StoreView {
	return &StoreView{
		ID:          s.ID,
		CentreID:    s.CentreID,
		Name:        s.Name,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		ExternalRef: s.ExternalRef,
		CreatedAt:   FormatTime(s.CreatedAt),
		UpdatedAt:   FormatTime(s.UpdatedAt),
	}
}

// CentreView is the read shape of a centre.
type CentreView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	ExternalRef string `json:"externalRef,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// NewCentreView builds the view of c.
func NewCentreView(c *domain.Centre) *CentreView {
	return &CentreView{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		ExternalRef: c.ExternalRef,
		CreatedAt:   FormatTime(c.CreatedAt),
	}
}

// ProductView is the read shape of a product.
type ProductView struct {
	ID        string `json:"id"`
	Barcode   string `json:"barcode"`
	Family    string `json:"family"`
	SubFamily string `json:"subFamily"`
}

// NewProductView builds the view of p.
func NewProductView(p *domain.Product) *ProductView {
	return &ProductView{
		ID:        p.ID,
		Barcode:   p.Barcode,
		Family:    p.Family,
		SubFamily: p.SubFamily,
	}
}

// ResolvedCampaign is the eligibility answer.
type ResolvedCampaign struct {
	CampaignID string `json:"campaignId"`
}

// ProductTotalView is one aggregation row: the product and its summed
// weight, with the product flattened into the row. It encodes as
//
//	{"productId":"p1","barcode":"3017620422003","family":"Epicerie",
//	 "subFamily":"Conserves","totalWeight":12.5,"entryCount":3}
type ProductTotalView struct {
	ProductID   string  `json:"productId"`
	Barcode     string  `json:"barcode"`
	Family      string  `json:"family"`
	SubFamily   string  `json:"subFamily"`
	TotalWeight float64 `json:"totalWeight"`
	EntryCount  int64   `json:"entryCount"`
}

// NewProductTotalView builds the view of t.
func NewProductTotalView(t *ProductTotal) *ProductTotalView {
	return &ProductTotalView{
		ProductID:   t.ProductID,
		Barcode:     t.Barcode,
		Family:      t.Family,
		SubFamily:   t.SubFamily,
		TotalWeight: t.TotalWeight,
		EntryCount:  t.EntryCount,
	}
}

// LedgerRowView is one line of a store's ledger: the entry with its
// product flattened into the row. It encodes as
//
//	{"id":"e1","productId":"p1","weight":2.5,"date":"2025-03-10T09:30:00.000Z",
//	 "barcode":"3017620422003","family":"Epicerie","subFamily":"Conserves"}
type LedgerRowView struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Weight    float64 `json:"weight"`
	Date      string  `json:"date"`
	Barcode   string  `json:"barcode"`
	Family    string  `json:"family"`
	SubFamily string  `json:"subFamily"`
}

// NewLedgerRowView builds the view of r.
func NewLedgerRowView(r *LedgerRow) *LedgerRowView {
	return &LedgerRowView{
		ID:        r.ID,
		ProductID: r.ProductID,
		Weight:    r.Weight,
		Date:      FormatTime(r.Date),
		Barcode:   r.Barcode,
		Family:    r.Family,
		SubFamily: r.SubFamily,
	}
}

// EntryContextView is what a centre sees before recording for a store.
type EntryContextView struct {
	CampaignID    string `json:"campaignId"`
	CampaignTitle string `json:"campaignTitle"`
	StoreID       string `json:"storeId"`
	StoreName     string `json:"storeName"`
	StoreAddress  string `json:"storeAddress"`
	CentreID      string `json:"centreId"`
}

// EventView is an outbox row.
type EventView struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
	ProcessedAt *string         `json:"processedAt"`
}

// NewEventView builds the view of e. A payload that is not valid JSON is
// rendered as a JSON string.
func NewEventView(e *OutboxEvent) *EventView {
	payload := json.RawMessage(e.Payload)
	if !json.Valid(payload) {
		quoted, _ := json.Marshal(e.Payload)
		payload = quoted
	}
	return &EventView{
		ID:          e.EventID,
		Type:        e.EventType,
		AggregateID: e.AggregateID,
		Payload:     payload,
		Status:      e.Status,
		CreatedAt:   FormatTime(e.CreatedAt),
		ProcessedAt: FormatOptionalTime(e.ProcessedAt),
	}
}
