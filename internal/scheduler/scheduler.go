// Package scheduler runs the periodic campaign status refresh.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/refresh_statuses"
	"github.com/light-bringer/collecte-service/internal/metrics"
)

// Refresher is the job run on every tick.
type Refresher interface {
	Execute(ctx context.Context, req *refresh_statuses.Request) (*refresh_statuses.Response, error)
}

// Options configures the scheduler.
type Options struct {
	// Spec is a standard five-field cron expression or a descriptor such as
	// "@daily" or "@every 1h".
	Spec     string
	Timeout  time.Duration
	Location *time.Location
}

// Scheduler triggers the refresher on a cron schedule. A tick that fires
// while the previous run is still going is skipped.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
	loc       *time.Location
}

// New validates the schedule and registers the job. Call Start to run it.
func New(refresher Refresher, opts Options) (*Scheduler, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	s := &Scheduler{cron: c, refresher: refresher, timeout: opts.Timeout, loc: loc}
	if _, err := c.AddFunc(opts.Spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", opts.Spec, err)
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	log.Printf("[SCHEDULER] started next=%s", s.Next().Format(time.RFC3339))
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Println("[SCHEDULER] stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// Next returns the next activation time, zero when nothing is scheduled.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now().In(s.loc))
}

// RunOnce performs one sweep with the configured timeout and records it.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.refresher.Execute(ctx, &refresh_statuses.Request{})
	elapsed := time.Since(start)

	if err != nil {
		log.Printf("[SCHEDULER] refresh failed after=%s err=%v", elapsed, err)
		metrics.RecordRefresh(0, 0, elapsed.Seconds(), err)
		return
	}
	log.Printf("[SCHEDULER] refresh done scanned=%d updated=%d failed=%d after=%s", resp.Scanned, resp.Updated, resp.Failed, elapsed)
	metrics.RecordRefresh(resp.Updated, resp.Failed, elapsed.Seconds(), nil)
}
