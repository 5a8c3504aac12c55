// Package testutil holds in-memory implementations of the collecte
// contracts and helpers shared by package tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

// EventLog collects the domain events a fake repository "committed".
type EventLog struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (l *EventLog) append(events []domain.DomainEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, events...)
}

// Types returns the committed event types in order.
func (l *EventLog) Types() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, ev.EventType())
	}
	return out
}

// CampaignRepo is an in-memory CampaignRepository. Reads return copies so
// unsaved changes never leak into the store.
type CampaignRepo struct {
	EventLog

	mu    sync.Mutex
	rows  map[string]*domain.Campaign
	saves int

	// SaveErr, keyed by campaign id, makes Save fail for that campaign.
	SaveErr map[string]error
}

// NewCampaignRepo creates an empty CampaignRepo.
func NewCampaignRepo() *CampaignRepo {
	return &CampaignRepo{rows: map[string]*domain.Campaign{}, SaveErr: map[string]error{}}
}

var _ contracts.CampaignRepository = (*CampaignRepo)(nil)

// Put stores c as-is, bypassing uniqueness checks and events.
func (r *CampaignRepo) Put(c *domain.Campaign) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.ID()] = cloneCampaign(c)
}

// Raw returns the stored campaign including soft-deleted rows.
func (r *CampaignRepo) Raw(id string) *domain.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.rows[id]; ok {
		return cloneCampaign(c)
	}
	return nil
}

// Saves counts successful Save calls.
func (r *CampaignRepo) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *CampaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.yearTaken(c.Year(), c.ID()) {
		return domain.ErrDuplicateYear
	}
	r.rows[c.ID()] = cloneCampaign(c)
	r.append(c.DomainEvents())
	c.ClearEvents()
	return nil
}

func (r *CampaignRepo) Save(_ context.Context, c *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.SaveErr[c.ID()]; err != nil {
		return err
	}
	if _, ok := r.rows[c.ID()]; !ok {
		return domain.ErrCampaignNotFound
	}
	if c.Changes().Dirty(domain.FieldYear) && !c.IsDeleted() && r.yearTaken(c.Year(), c.ID()) {
		return domain.ErrDuplicateYear
	}
	r.rows[c.ID()] = cloneCampaign(c)
	r.saves++
	r.append(c.DomainEvents())
	c.ClearEvents()
	return nil
}

func (r *CampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok || c.IsDeleted() {
		return nil, domain.ErrCampaignNotFound
	}
	return cloneCampaign(c), nil
}

func (r *CampaignRepo) ExistsForYear(_ context.Context, year int, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.yearTaken(year, excludeID), nil
}

func (r *CampaignRepo) List(_ context.Context, f contracts.CampaignFilter) ([]*domain.Campaign, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.sorted(false)
	sort.SliceStable(live, func(i, j int) bool {
		less := campaignLess(live[i], live[j], f.SortBy)
		if f.Desc {
			return campaignLess(live[j], live[i], f.SortBy)
		}
		return less
	})

	total := int64(len(live))
	if f.Offset >= len(live) {
		return []*domain.Campaign{}, total, nil
	}
	end := len(live)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return live[f.Offset:end], total, nil
}

func (r *CampaignRepo) ListAll(_ context.Context, includeDeleted bool) ([]*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(includeDeleted), nil
}

func (r *CampaignRepo) FindOpenAt(_ context.Context, at time.Time) ([]*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Campaign
	for _, c := range r.sorted(false) {
		if c.Contains(at) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CampaignRepo) yearTaken(year int, excludeID string) bool {
	for id, c := range r.rows {
		if id != excludeID && c.Year() == year && !c.IsDeleted() {
			return true
		}
	}
	return false
}

// sorted returns copies by year DESC.
func (r *CampaignRepo) sorted(includeDeleted bool) []*domain.Campaign {
	out := make([]*domain.Campaign, 0, len(r.rows))
	for _, c := range r.rows {
		if c.IsDeleted() && !includeDeleted {
			continue
		}
		out = append(out, cloneCampaign(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year() != out[j].Year() {
			return out[i].Year() > out[j].Year()
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

func campaignLess(a, b *domain.Campaign, by contracts.CampaignSort) bool {
	switch by {
	case contracts.SortByTitle:
		return a.Title() < b.Title()
	case contracts.SortByCreatedAt:
		return a.CreatedAt().Before(b.CreatedAt())
	case contracts.SortByStartAt:
		as, bs := a.DefaultStartAt(), b.DefaultStartAt()
		if as == nil || bs == nil {
			return as == nil && bs != nil
		}
		return as.Before(*bs)
	default:
		return a.Year() < b.Year()
	}
}

func cloneCampaign(c *domain.Campaign) *domain.Campaign {
	return domain.ReconstructCampaign(
		c.ID(), c.Year(), c.Title(), c.Slug(),
		c.Schedule(), c.LockedAt(), c.StoredStatus(),
		c.CreatedAt(), c.UpdatedAt(), c.DeletedAt(),
	)
}

// EnrollmentRepo is an in-memory EnrollmentRepository.
type EnrollmentRepo struct {
	EventLog

	mu   sync.Mutex
	rows map[string]*domain.Enrollment // campaign|store
}

// NewEnrollmentRepo creates an empty EnrollmentRepo.
func NewEnrollmentRepo() *EnrollmentRepo {
	return &EnrollmentRepo{rows: map[string]*domain.Enrollment{}}
}

var _ contracts.EnrollmentRepository = (*EnrollmentRepo)(nil)

func enrollmentKey(campaignID, storeID string) string { return campaignID + "|" + storeID }

func (r *EnrollmentRepo) Get(_ context.Context, campaignID, storeID string) (*domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[enrollmentKey(campaignID, storeID)]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	return cloneEnrollment(e), nil
}

func (r *EnrollmentRepo) FindEnabled(ctx context.Context, campaignID, storeID string) (*domain.Enrollment, error) {
	e, err := r.Get(ctx, campaignID, storeID)
	if err != nil {
		return nil, err
	}
	if !e.Enabled() {
		return nil, domain.ErrEnrollmentNotFound
	}
	return e, nil
}

func (r *EnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := enrollmentKey(e.CampaignID(), e.StoreID())
	if _, ok := r.rows[key]; ok {
		return domain.ErrDuplicateEnrollment
	}
	r.rows[key] = cloneEnrollment(e)
	r.append(e.DomainEvents())
	e.ClearEvents()
	return nil
}

func (r *EnrollmentRepo) Save(_ context.Context, e *domain.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := enrollmentKey(e.CampaignID(), e.StoreID())
	if _, ok := r.rows[key]; !ok {
		return domain.ErrEnrollmentNotFound
	}
	r.rows[key] = cloneEnrollment(e)
	r.append(e.DomainEvents())
	e.ClearEvents()
	return nil
}

func (r *EnrollmentRepo) ListByCampaign(_ context.Context, campaignID string) ([]*domain.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Enrollment
	for _, e := range r.rows {
		if e.CampaignID() == campaignID {
			out = append(out, cloneEnrollment(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID() < out[j].StoreID() })
	return out, nil
}

func cloneEnrollment(e *domain.Enrollment) *domain.Enrollment {
	return domain.ReconstructEnrollment(
		e.ID(), e.CampaignID(), e.StoreID(), e.Enabled(),
		e.Window(), e.ValidatedAt(), e.CreatedAt(), e.UpdatedAt(),
	)
}

// Directory is an in-memory StoreRepository, CentreRepository and
// ProductRepository. Enrollments are consulted for ListEnrolled.
type Directory struct {
	mu          sync.Mutex
	stores      map[string]domain.Store
	centres     map[string]domain.Centre
	products    map[string]domain.Product
	enrollments *EnrollmentRepo
}

// NewDirectory creates an empty Directory.
func NewDirectory(enrollments *EnrollmentRepo) *Directory {
	return &Directory{
		stores:      map[string]domain.Store{},
		centres:     map[string]domain.Centre{},
		products:    map[string]domain.Product{},
		enrollments: enrollments,
	}
}

// Stores exposes the directory as a StoreRepository.
func (d *Directory) Stores() contracts.StoreRepository { return storeView{d} }

// Centres exposes the directory as a CentreRepository.
func (d *Directory) Centres() contracts.CentreRepository { return centreView{d} }

// Products exposes the directory as a ProductRepository.
func (d *Directory) Products() contracts.ProductRepository { return productView{d} }

type storeView struct{ d *Directory }

func (v storeView) Create(_ context.Context, s *domain.Store) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	if v.d.addressTaken(s.CentreID, s.Address, s.ID) {
		return domain.ErrDuplicateAddress
	}
	v.d.stores[s.ID] = *s
	return nil
}

func (v storeView) Update(_ context.Context, s *domain.Store) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	if _, ok := v.d.stores[s.ID]; !ok {
		return domain.ErrStoreNotFound
	}
	if v.d.addressTaken(s.CentreID, s.Address, s.ID) {
		return domain.ErrDuplicateAddress
	}
	v.d.stores[s.ID] = *s
	return nil
}

func (v storeView) GetByID(_ context.Context, id string) (*domain.Store, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	s, ok := v.d.stores[id]
	if !ok || s.DeletedAt != nil {
		return nil, domain.ErrStoreNotFound
	}
	return &s, nil
}

func (v storeView) ExistsAddress(_ context.Context, centreID, address, excludeID string) (bool, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	return v.d.addressTaken(centreID, address, excludeID), nil
}

func (v storeView) ListByCentre(_ context.Context, centreID string) ([]*domain.Store, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	return v.d.storesWhere(func(s domain.Store) bool { return s.CentreID == centreID }), nil
}

func (v storeView) ListEnrolled(ctx context.Context, centreID, campaignID string) ([]*domain.Store, error) {
	v.d.mu.Lock()
	candidates := v.d.storesWhere(func(s domain.Store) bool { return s.CentreID == centreID })
	v.d.mu.Unlock()

	var out []*domain.Store
	for _, s := range candidates {
		if _, err := v.d.enrollments.FindEnabled(ctx, campaignID, s.ID); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (d *Directory) addressTaken(centreID, address, excludeID string) bool {
	for id, s := range d.stores {
		if id != excludeID && s.CentreID == centreID && s.Address == address {
			return true
		}
	}
	return false
}

func (d *Directory) storesWhere(keep func(domain.Store) bool) []*domain.Store {
	var out []*domain.Store
	for _, s := range d.stores {
		if s.DeletedAt == nil && keep(s) {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type centreView struct{ d *Directory }

func (v centreView) Create(_ context.Context, c *domain.Centre) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	for _, existing := range v.d.centres {
		if c.Email != "" && strings.EqualFold(existing.Email, c.Email) {
			return domain.ErrDuplicateEmail
		}
		if c.ExternalRef != "" && existing.ExternalRef == c.ExternalRef {
			return domain.ErrDuplicateExternalRef
		}
	}
	v.d.centres[c.ID] = *c
	return nil
}

func (v centreView) GetByID(_ context.Context, id string) (*domain.Centre, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	c, ok := v.d.centres[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrCentreNotFound
	}
	return &c, nil
}

func (v centreView) List(_ context.Context) ([]*domain.Centre, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	var out []*domain.Centre
	for _, c := range v.d.centres {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v centreView) ExistsEmail(_ context.Context, email string) (bool, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	for _, c := range v.d.centres {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (v centreView) ExistsExternalRef(_ context.Context, ref string) (bool, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	for _, c := range v.d.centres {
		if c.ExternalRef == ref {
			return true, nil
		}
	}
	return false, nil
}

type productView struct{ d *Directory }

func (v productView) Create(_ context.Context, p *domain.Product) error {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	for _, existing := range v.d.products {
		if existing.Barcode == p.Barcode {
			return domain.ErrDuplicateBarcode
		}
	}
	v.d.products[p.ID] = *p
	return nil
}

func (v productView) GetByID(_ context.Context, id string) (*domain.Product, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	p, ok := v.d.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (v productView) GetByBarcode(_ context.Context, barcode string) (*domain.Product, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	for _, p := range v.d.products {
		if p.Barcode == barcode && p.DeletedAt == nil {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (v productView) List(_ context.Context, offset, limit int) ([]*domain.Product, int64, error) {
	v.d.mu.Lock()
	defer v.d.mu.Unlock()
	var all []*domain.Product
	for _, p := range v.d.products {
		if p.DeletedAt == nil {
			p := p
			all = append(all, &p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Barcode < all[j].Barcode })
	total := int64(len(all))
	if offset >= len(all) {
		return []*domain.Product{}, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

// EntryRepo is an in-memory EntryRepository. Products are resolved through
// the directory for the joined projections.
type EntryRepo struct {
	EventLog

	mu       sync.Mutex
	rows     []domain.Entry
	products contracts.ProductRepository
}

// NewEntryRepo creates an empty EntryRepo.
func NewEntryRepo(products contracts.ProductRepository) *EntryRepo {
	return &EntryRepo{products: products}
}

var _ contracts.EntryRepository = (*EntryRepo)(nil)

// Count returns the number of stored entries.
func (r *EntryRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *EntryRepo) Create(_ context.Context, e *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *e)
	r.append([]domain.DomainEvent{e.RecordedEvent()})
	return nil
}

func (r *EntryRepo) SumByProduct(ctx context.Context, scope contracts.EntryScope) ([]*contracts.ProductTotal, error) {
	byProduct := map[string]*contracts.ProductTotal{}
	for _, e := range r.matching(scope, false) {
		t, ok := byProduct[e.ProductID]
		if !ok {
			p, err := r.products.GetByID(ctx, e.ProductID)
			if err != nil {
				return nil, err
			}
			t = &contracts.ProductTotal{ProductID: p.ID, Barcode: p.Barcode, Family: p.Family, SubFamily: p.SubFamily}
			byProduct[e.ProductID] = t
		}
		t.TotalWeight += e.Weight
		t.EntryCount++
	}
	out := make([]*contracts.ProductTotal, 0, len(byProduct))
	for _, t := range byProduct {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Barcode < out[j].Barcode })
	return out, nil
}

func (r *EntryRepo) Ledger(ctx context.Context, scope contracts.EntryScope) ([]*contracts.LedgerRow, error) {
	entries := r.matching(scope, true)
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	out := make([]*contracts.LedgerRow, 0, len(entries))
	for _, e := range entries {
		p, err := r.products.GetByID(ctx, e.ProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, &contracts.LedgerRow{
			ID: e.ID, ProductID: e.ProductID, Weight: e.Weight, Date: e.CreatedAt,
			Barcode: p.Barcode, Family: p.Family, SubFamily: p.SubFamily,
		})
	}
	return out, nil
}

func (r *EntryRepo) matching(scope contracts.EntryScope, byStore bool) []domain.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Entry
	for _, e := range r.rows {
		if e.CampaignID != scope.CampaignID {
			continue
		}
		if byStore && e.StoreID != scope.StoreID {
			continue
		}
		if scope.CentreID != "" && e.CentreID != scope.CentreID {
			continue
		}
		out = append(out, e)
	}
	return out
}
