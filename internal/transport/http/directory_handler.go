package http

import (
	"net/http"

	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/get_product"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_products"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_centre"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_product"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_store"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/update_store"
)

type centreBody struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ExternalRef string `json:"externalRef"`
}

type storeBody struct {
	CentreID    string `json:"centreId"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ExternalRef string `json:"externalRef"`
}

type storePatchBody struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	ExternalRef *string `json:"externalRef"`
}

type productBody struct {
	Barcode   string `json:"barcode"`
	Family    string `json:"family"`
	SubFamily string `json:"subFamily"`
}

func (s *Server) listCentres(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.ListCentres.Execute(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) getCentre(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.GetCentre.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) createCentre(w http.ResponseWriter, r *http.Request) error {
	var body centreBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.CreateCentre.Execute(r.Context(), &create_centre.Request{
		Name:        body.Name,
		Address:     body.Address,
		Phone:       body.Phone,
		Email:       body.Email,
		ExternalRef: body.ExternalRef,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, resp)
	return nil
}

func (s *Server) listStores(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.ListStores.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) getStore(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.GetStore.Execute(r.Context(), r.PathValue("storeId"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) createStore(w http.ResponseWriter, r *http.Request) error {
	var body storeBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.CreateStore.Execute(r.Context(), &create_store.Request{
		CentreID:    body.CentreID,
		Name:        body.Name,
		Address:     body.Address,
		Phone:       body.Phone,
		Email:       body.Email,
		ExternalRef: body.ExternalRef,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, resp)
	return nil
}

func (s *Server) updateStore(w http.ResponseWriter, r *http.Request) error {
	var body storePatchBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.UpdateStore.Execute(r.Context(), &update_store.Request{
		StoreID:     r.PathValue("storeId"),
		Name:        body.Name,
		Address:     body.Address,
		Phone:       body.Phone,
		Email:       body.Email,
		ExternalRef: body.ExternalRef,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) error {
	page, err := queryInt(r, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return err
	}
	resp, err := s.h.ListProducts.Execute(r.Context(), &list_products.Request{Page: page, Limit: limit})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.GetProduct.Execute(r.Context(), &get_product.Request{ProductID: r.PathValue("id")})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) getProductByBarcode(w http.ResponseWriter, r *http.Request) error {
	resp, err := s.h.GetProduct.Execute(r.Context(), &get_product.Request{Barcode: r.PathValue("barcode")})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) error {
	var body productBody
	if err := decodeJSON(w, r, &body); err != nil {
		return err
	}
	resp, err := s.h.CreateProduct.Execute(r.Context(), &create_product.Request{
		Barcode:   body.Barcode,
		Family:    body.Family,
		SubFamily: body.SubFamily,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, resp)
	return nil
}
