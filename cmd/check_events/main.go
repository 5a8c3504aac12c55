package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/light-bringer/collecte-service/internal/app/collecte/contracts"
	"github.com/light-bringer/collecte-service/internal/config"
	"github.com/light-bringer/collecte-service/internal/services"
)

// check_events prints the newest audit events of the configured store.
func main() {
	filter := contracts.EventFilter{}
	flag.StringVar(&filter.EventType, "type", "", "Only events of this type (e.g. entry.recorded)")
	flag.StringVar(&filter.AggregateID, "aggregate", "", "Only events of this aggregate id")
	flag.StringVar(&filter.Status, "status", "", "Only events with this status")
	flag.IntVar(&filter.Limit, "limit", 10, "Maximum number of events")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}
	defer serviceOpts.Close()

	events, err := serviceOpts.Repositories.Events.ListEvents(ctx, filter)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found!")
		return
	}

	fmt.Println("Events in outbox_events:")
	for i, ev := range events {
		fmt.Printf("%d. %s - %s (aggregate: %s, status: %s, at: %s)\n",
			i+1, ev.EventType, ev.EventID, ev.AggregateID, ev.Status, ev.CreatedAt.Format(time.RFC3339))
		fmt.Printf("   %s\n", ev.Payload)
	}
	fmt.Printf("\nTotal: %d events\n", len(events))
}
