package http

import (
	"net/http"

	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/entry_context"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/entry_ledger"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_eligible_stores"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/product_totals"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/resolve_active_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/store_products"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/record_entry"
	"github.com/light-bringer/collecte-service/internal/metrics"
)

type recordEntryBody struct {
	ProductID string  `json:"productId"`
	Weight    float64 `json:"weight"`
}

// recordEntry records for the caller's centre; the token is the only
// source of the acting centre.
func (s *Server) recordEntry(w http.ResponseWriter, r *http.Request) error {
	var body recordEntryBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.RecordEntry.Execute(r.Context(), &record_entry.Request{
		StoreID:        r.PathValue("storeId"),
		ProductID:      body.ProductID,
		Weight:         body.Weight,
		ActingCentreID: principal(r).CentreID,
	})
	metrics.RecordEntryOutcome(err)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, resp)
	return nil
}

func (s *Server) entryContext(w http.ResponseWriter, r *http.Request) error {
	at, err := queryTime(r, "at")
	if err != nil {
		return err
	}
	resp, err := s.h.EntryContext.Execute(r.Context(), &entry_context.Request{
		StoreID:        r.PathValue("storeId"),
		ActingCentreID: principal(r).CentreID,
		At:             at,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) resolveActiveCampaign(w http.ResponseWriter, r *http.Request) error {
	at, err := queryTime(r, "at")
	if err != nil {
		return err
	}
	resp, err := s.h.ResolveActiveCampaign.Execute(r.Context(), &resolve_active_campaign.Request{
		StoreID: r.PathValue("storeId"),
		At:      at,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) eligibleStores(w http.ResponseWriter, r *http.Request) error {
	centreID := r.PathValue("id")
	if p := principal(r); !p.IsAdmin() && p.CentreID != centreID {
		return errNoCentre
	}
	at, err := queryTime(r, "at")
	if err != nil {
		return err
	}
	resp, err := s.h.ListEligibleStores.Execute(r.Context(), &list_eligible_stores.Request{CentreID: centreID, At: at})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) productTotals(w http.ResponseWriter, r *http.Request) error {
	centreID, err := centreScope(r)
	if err != nil {
		return err
	}
	resp, err := s.h.ProductTotals.Execute(r.Context(), &product_totals.Request{
		CampaignID: r.PathValue("id"),
		CentreID:   centreID,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) storeProducts(w http.ResponseWriter, r *http.Request) error {
	centreID, err := centreScope(r)
	if err != nil {
		return err
	}
	resp, err := s.h.StoreProducts.Execute(r.Context(), &store_products.Request{
		CampaignID: r.PathValue("id"),
		StoreID:    r.PathValue("storeId"),
		CentreID:   centreID,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) entryLedger(w http.ResponseWriter, r *http.Request) error {
	centreID, err := centreScope(r)
	if err != nil {
		return err
	}
	resp, err := s.h.EntryLedger.Execute(r.Context(), &entry_ledger.Request{
		CampaignID: r.PathValue("id"),
		StoreID:    r.PathValue("storeId"),
		CentreID:   centreID,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}
