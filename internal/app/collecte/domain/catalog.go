package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Centre coordinates a group of stores.
type Centre struct {
	ID          string
	Name        string
	Address     string
	Phone       string
	Email       string
	ExternalRef string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewCentre validates and normalises a centre.
func NewCentre(id, name, address, phone, email, externalRef string, now time.Time) (*Centre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Centre{
		ID:          id,
		Name:        name,
		Address:     NormalizeAddress(address),
		Phone:       strings.TrimSpace(phone),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		ExternalRef: strings.TrimSpace(externalRef),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Store ("magasin") belongs to exactly one centre.
type Store struct {
	ID          string
	CentreID    string
	Name        string
	Address     string
	Phone       string
	Email       string
	ExternalRef string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// NewStore validates and normalises a store.
func NewStore(id, centreID, name, address, phone, email, externalRef string, now time.Time) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	address = NormalizeAddress(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	return &Store{
		ID:          id,
		CentreID:    centreID,
		Name:        name,
		Address:     address,
		Phone:       strings.TrimSpace(phone),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		ExternalRef: strings.TrimSpace(externalRef),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// BelongsTo reports whether the store is owned by centreID.
func (s *Store) BelongsTo(centreID string) bool {
	return s.CentreID == centreID
}

// NormalizeAddress trims and collapses internal whitespace so that
// uniqueness checks compare canonical forms.
func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(address), " ")
}

const (
	maxBarcodeLen = 14
	maxFamilyLen  = 32
)

// Product is a catalogue item identified by its GTIN barcode.
type Product struct {
	ID        string
	Barcode   string
	Family    string
	SubFamily string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewProduct validates a catalogue product.
func NewProduct(id, barcode, family, subFamily string, now time.Time) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" || utf8.RuneCountInString(barcode) > maxBarcodeLen {
		return nil, ErrInvalidBarcode
	}
	family = strings.TrimSpace(family)
	subFamily = strings.TrimSpace(subFamily)
	if !validFamily(family) || !validFamily(subFamily) {
		return nil, ErrInvalidFamily
	}
	return &Product{
		ID:        id,
		Barcode:   barcode,
		Family:    family,
		SubFamily: subFamily,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func validFamily(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 0 && n <= maxFamilyLen
}
