// Package http exposes the collecte use cases as a JSON API.
package http

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/entry_context"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/entry_ledger"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/get_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/get_centre"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/get_product"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/get_store"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_all_campaigns"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_campaigns"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_centres"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_eligible_stores"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_events"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_products"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/list_stores"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/product_totals"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/resolve_active_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/queries/store_products"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_centre"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_product"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/create_store"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/delete_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/record_entry"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/refresh_statuses"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/toggle_enrollments"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/update_campaign"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/update_enrollment"
	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/update_store"
	"github.com/light-bringer/collecte-service/internal/metrics"
	"github.com/light-bringer/collecte-service/internal/telemetry"
)

// Handlers groups every use case and query the API serves.
type Handlers struct {
	CreateCampaign    *create_campaign.Interactor
	UpdateCampaign    *update_campaign.Interactor
	DeleteCampaign    *delete_campaign.Interactor
	RefreshStatuses   *refresh_statuses.Interactor
	ToggleEnrollments *toggle_enrollments.Interactor
	UpdateEnrollment  *update_enrollment.Interactor
	RecordEntry       *record_entry.Interactor
	CreateStore       *create_store.Interactor
	UpdateStore       *update_store.Interactor
	CreateCentre      *create_centre.Interactor
	CreateProduct     *create_product.Interactor

	GetCampaign           *get_campaign.Query
	ListCampaigns         *list_campaigns.Query
	ListAllCampaigns      *list_all_campaigns.Query
	ResolveActiveCampaign *resolve_active_campaign.Query
	ListEligibleStores    *list_eligible_stores.Query
	ProductTotals         *product_totals.Query
	StoreProducts         *store_products.Query
	EntryLedger           *entry_ledger.Query
	EntryContext          *entry_context.Query
	ListEvents            *list_events.Query
	GetStore              *get_store.Query
	ListStores            *list_stores.Query
	GetCentre             *get_centre.Query
	ListCentres           *list_centres.Query
	GetProduct            *get_product.Query
	ListProducts          *list_products.Query
}

// Server routes API requests to the handlers.
type Server struct {
	h    *Handlers
	auth *Authenticator
	mux  *http.ServeMux
}

// handlerFunc is an API handler; a returned error is rendered by the
// server.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

type access int

const (
	anyRole access = iota
	adminOnly
)

// NewServer registers every route.
func NewServer(h *Handlers, auth *Authenticator) *Server {
	s := &Server{h: h, auth: auth, mux: http.NewServeMux()}

	// campaigns
	s.handle("GET /api/v1/campaigns", anyRole, s.listCampaigns)
	s.handle("POST /api/v1/campaigns", adminOnly, s.createCampaign)
	s.handle("GET /api/v1/campaigns/all", anyRole, s.listAllCampaigns)
	s.handle("POST /api/v1/campaigns/update-statuses", adminOnly, s.refreshStatuses)
	s.handle("GET /api/v1/campaigns/{id}", anyRole, s.getCampaign)
	s.handle("PATCH /api/v1/campaigns/{id}", adminOnly, s.updateCampaign)
	s.handle("DELETE /api/v1/campaigns/{id}", adminOnly, s.deleteCampaign)
	s.handle("POST /api/v1/campaigns/{id}/enrollments", adminOnly, s.toggleEnrollments)
	s.handle("PATCH /api/v1/campaigns/{id}/enrollments/{storeId}", adminOnly, s.updateEnrollment)

	// entries and aggregations
	s.handle("POST /api/v1/entries/{storeId}", anyRole, s.recordEntry)
	s.handle("GET /api/v1/entries/{storeId}/context", anyRole, s.entryContext)
	s.handle("GET /api/v1/stores/{storeId}/active-campaign", anyRole, s.resolveActiveCampaign)
	s.handle("GET /api/v1/campaigns/{id}/totals", anyRole, s.productTotals)
	s.handle("GET /api/v1/campaigns/{id}/stores/{storeId}/products", anyRole, s.storeProducts)
	s.handle("GET /api/v1/campaigns/{id}/stores/{storeId}/ledger", anyRole, s.entryLedger)
	s.handle("GET /api/v1/centres/{id}/eligible-stores", anyRole, s.eligibleStores)

	// directory
	s.handle("GET /api/v1/centres", anyRole, s.listCentres)
	s.handle("POST /api/v1/centres", adminOnly, s.createCentre)
	s.handle("GET /api/v1/centres/{id}", anyRole, s.getCentre)
	s.handle("GET /api/v1/centres/{id}/stores", anyRole, s.listStores)
	s.handle("POST /api/v1/stores", adminOnly, s.createStore)
	s.handle("GET /api/v1/stores/{storeId}", anyRole, s.getStore)
	s.handle("PATCH /api/v1/stores/{storeId}", adminOnly, s.updateStore)
	s.handle("GET /api/v1/products", anyRole, s.listProducts)
	s.handle("POST /api/v1/products", adminOnly, s.createProduct)
	s.handle("GET /api/v1/products/{id}", anyRole, s.getProduct)
	s.handle("GET /api/v1/products/barcode/{barcode}", anyRole, s.getProductByBarcode)

	// audit
	s.handle("GET /api/v1/events", adminOnly, s.listEvents)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handle wraps fn with authentication, tracing and latency metrics.
func (s *Server) handle(pattern string, acc access, fn handlerFunc) {
	s.mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		ctx, span := telemetry.Tracer().Start(r.Context(), pattern)
		defer span.End()
		r = r.WithContext(ctx)

		if err := s.serve(rec, r, acc, fn); err != nil {
			writeError(rec, r, err)
		}

		span.SetAttributes(attribute.Int("http.status_code", rec.status))
		metrics.RecordHTTP(pattern, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}))
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, acc access, fn handlerFunc) error {
	p, err := s.auth.Authenticate(r)
	if err != nil {
		return err
	}
	if acc == adminOnly && !p.IsAdmin() {
		return errAdminOnly
	}
	return fn(w, r.WithContext(withPrincipal(r.Context(), p)))
}

// principal returns the caller; handle guarantees it is set.
func principal(r *http.Request) Principal {
	p, _ := PrincipalFrom(r.Context())
	return p
}

// centreScope is the centre filter for aggregations: users only ever see
// their own centre, admins may narrow with ?centreId=.
func centreScope(r *http.Request) (string, error) {
	p := principal(r)
	if p.IsAdmin() {
		return r.URL.Query().Get("centreId"), nil
	}
	if p.CentreID == "" {
		return "", errNoCentre
	}
	return p.CentreID, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
