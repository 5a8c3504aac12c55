// Package services wires repositories, use cases and transports together.
package services

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/spanner"
	"github.com/jmoiron/sqlx"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	domainsvc "github.com/light-bringer/collecte-service/internal/app/collecte/domain/services"
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
	"github.com/light-bringer/collecte-service/internal/app/collecte/repo"
	"github.com/light-bringer/collecte-service/internal/app/collecte/sqlrepo"
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
	"github.com/light-bringer/collecte-service/internal/config"
	"github.com/light-bringer/collecte-service/internal/pkg/clock"
	"github.com/light-bringer/collecte-service/internal/pkg/committer"
	httpapi "github.com/light-bringer/collecte-service/internal/transport/http"
)

// Repositories is the persistence backend the use cases run on.
type Repositories struct {
	Campaigns   contracts.CampaignRepository
	Enrollments contracts.EnrollmentRepository
	Stores      contracts.StoreRepository
	Centres     contracts.CentreRepository
	Products    contracts.ProductRepository
	Entries     contracts.EntryRepository
	Events      contracts.EventsReadModel
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Repositories Repositories
	Handlers     *httpapi.Handlers

	spannerClient *spanner.Client
	db            *sqlx.DB
}

// NewServiceOptions opens the configured backend and wires every use case.
func NewServiceOptions(ctx context.Context, cfg *config.Config) (*ServiceOptions, error) {
	clk := clock.NewRealClock()
	opts := &ServiceOptions{}

	switch cfg.Store.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.spannerClient = client
		opts.Repositories = SpannerRepositories(client, clk)
		log.Printf("[STORE] driver=spanner database=%s", cfg.Spanner.Database)

	case config.DriverPostgres, config.DriverSQLite:
		db, err := sqlrepo.Open(ctx, cfg.Store.Driver, cfg.DB.DSN, sqlrepo.Options{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		opts.db = db
		if cfg.DB.AutoMigrate {
			if err := sqlrepo.Migrate(ctx, db); err != nil {
				opts.Close()
				return nil, err
			}
		}
		opts.Repositories = SQLRepositories(db, clk)
		log.Printf("[STORE] driver=%s", cfg.Store.Driver)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	opts.Handlers = NewHandlers(opts.Repositories, clk)
	return opts, nil
}

// SpannerRepositories builds the Spanner backend.
func SpannerRepositories(client *spanner.Client, clk clock.Clock) Repositories {
	comm := committer.NewCommitter(client)
	return Repositories{
		Campaigns:   repo.NewCampaignRepo(client, comm, clk),
		Enrollments: repo.NewEnrollmentRepo(client, comm, clk),
		Stores:      repo.NewStoreRepo(client, comm),
		Centres:     repo.NewCentreRepo(client, comm),
		Products:    repo.NewProductRepo(client, comm),
		Entries:     repo.NewEntryRepo(client, comm),
		Events:      repo.NewEventsReadModel(client),
	}
}

// SQLRepositories builds the postgres/sqlite backend.
func SQLRepositories(db *sqlx.DB, clk clock.Clock) Repositories {
	return Repositories{
		Campaigns:   sqlrepo.NewCampaignRepo(db, clk),
		Enrollments: sqlrepo.NewEnrollmentRepo(db, clk),
		Stores:      sqlrepo.NewStoreRepo(db),
		Centres:     sqlrepo.NewCentreRepo(db),
		Products:    sqlrepo.NewProductRepo(db),
		Entries:     sqlrepo.NewEntryRepo(db),
		Events:      sqlrepo.NewEventsReadModel(db),
	}
}

// NewHandlers creates every use case and query over r.
func NewHandlers(r Repositories, clk clock.Clock) *httpapi.Handlers {
	resolver := domainsvc.NewEligibilityResolver(r.Campaigns, r.Enrollments)

	return &httpapi.Handlers{
		// commands
		CreateCampaign:    create_campaign.NewInteractor(r.Campaigns, clk),
		UpdateCampaign:    update_campaign.NewInteractor(r.Campaigns, clk),
		DeleteCampaign:    delete_campaign.NewInteractor(r.Campaigns, clk),
		RefreshStatuses:   refresh_statuses.NewInteractor(r.Campaigns, clk),
		ToggleEnrollments: toggle_enrollments.NewInteractor(r.Campaigns, r.Enrollments, r.Stores, clk),
		UpdateEnrollment:  update_enrollment.NewInteractor(r.Enrollments, clk),
		RecordEntry:       record_entry.NewInteractor(r.Stores, r.Products, r.Entries, resolver, clk),
		CreateStore:       create_store.NewInteractor(r.Stores, r.Centres, clk),
		UpdateStore:       update_store.NewInteractor(r.Stores, clk),
		CreateCentre:      create_centre.NewInteractor(r.Centres, clk),
		CreateProduct:     create_product.NewInteractor(r.Products, clk),

		// queries
		GetCampaign:           get_campaign.NewQuery(r.Campaigns, clk),
		ListCampaigns:         list_campaigns.NewQuery(r.Campaigns, clk),
		ListAllCampaigns:      list_all_campaigns.NewQuery(r.Campaigns, clk),
		ResolveActiveCampaign: resolve_active_campaign.NewQuery(resolver, clk),
		ListEligibleStores:    list_eligible_stores.NewQuery(r.Stores, resolver, clk),
		ProductTotals:         product_totals.NewQuery(r.Campaigns, r.Entries),
		StoreProducts:         store_products.NewQuery(r.Entries),
		EntryLedger:           entry_ledger.NewQuery(r.Entries),
		EntryContext:          entry_context.NewQuery(r.Stores, resolver, clk),
		ListEvents:            list_events.NewQuery(r.Events),
		GetStore:              get_store.NewQuery(r.Stores),
		ListStores:            list_stores.NewQuery(r.Stores, r.Centres),
		GetCentre:             get_centre.NewQuery(r.Centres),
		ListCentres:           list_centres.NewQuery(r.Centres),
		GetProduct:            get_product.NewQuery(r.Products),
		ListProducts:          list_products.NewQuery(r.Products),
	}
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.spannerClient != nil {
		s.spannerClient.Close()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("[STORE] close failed: %v", err)
		}
	}
}
