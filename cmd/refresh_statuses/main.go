package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/refresh_statuses"
	"github.com/light-bringer/collecte-service/internal/config"
	"github.com/light-bringer/collecte-service/internal/services"
)

// Options for the one-shot status sweep. Storage settings come from the
// same environment as the server.
type Options struct {
	DryRun  bool
	Timeout time.Duration
}

func main() {
	opts := Options{}
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would change without writing")
	flag.DurationVar(&opts.Timeout, "timeout", 5*time.Minute, "Abort the sweep after this long")
	flag.Parse()

	ctx := context.Background()

	if err := refresh(ctx, opts); err != nil {
		log.Fatalf("Refresh failed: %v", err)
	}

	log.Println("Refresh completed successfully")
}

func refresh(ctx context.Context, opts Options) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	log.Printf("Starting status refresh...")
	log.Printf("  Store driver: %s", cfg.Store.Driver)
	log.Printf("  Dry run: %v", opts.DryRun)

	resp, err := serviceOpts.Handlers.RefreshStatuses.Execute(ctx, &refresh_statuses.Request{DryRun: opts.DryRun})
	if err != nil {
		return err
	}

	log.Printf("  Scanned: %d", resp.Scanned)
	log.Printf("  Updated: %d", resp.Updated)
	if resp.Failed > 0 {
		return fmt.Errorf("%d campaign(s) could not be updated", resp.Failed)
	}
	return nil
}
