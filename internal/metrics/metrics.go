// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

var (
	// RefreshRuns counts refresher sweeps by outcome.
	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collecte_refresh_runs_total",
			Help: "Status refresher runs by outcome",
		},
		[]string{"outcome"}, // success, error, skipped
	)

	// RefreshUpdated counts campaigns whose stored status was rewritten.
	RefreshUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collecte_refresh_campaigns_updated_total",
		Help: "Campaign status rows rewritten by the refresher",
	})

	// RefreshFailed counts rows the refresher could not write.
	RefreshFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collecte_refresh_campaigns_failed_total",
		Help: "Campaign status rows the refresher failed to write",
	})

	// RefreshDuration tracks sweep latency.
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "collecte_refresh_duration_seconds",
		Help:    "Duration of status refresher runs in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
	})

	// EntriesRecorded counts accepted weight entries.
	EntriesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collecte_entries_recorded_total",
		Help: "Weight entries recorded",
	})

	// EligibilityRejections counts refused entry attempts by reason.
	EligibilityRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collecte_eligibility_rejections_total",
			Help: "Entry attempts refused by the ownership or eligibility checks",
		},
		[]string{"reason"}, // forbidden, no_campaign_open, not_enrolled
	)

	// HTTPRequestDuration tracks API latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "collecte_http_request_duration_seconds",
			Help: "Duration of HTTP API requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"route", "code"},
	)
)

// RecordRefresh records one refresher run.
func RecordRefresh(updated, failed int, seconds float64, err error) {
	RefreshDuration.Observe(seconds)
	if err != nil {
		RefreshRuns.WithLabelValues("error").Inc()
		return
	}
	RefreshRuns.WithLabelValues("success").Inc()
	RefreshUpdated.Add(float64(updated))
	RefreshFailed.Add(float64(failed))
}

// RecordEntryOutcome counts a record entry attempt. Errors outside the
// ownership and eligibility rules are not counted.
func RecordEntryOutcome(err error) {
	switch {
	case err == nil:
		EntriesRecorded.Inc()
	case errors.Is(err, domain.ErrStoreForbidden):
		EligibilityRejections.WithLabelValues("forbidden").Inc()
	case errors.Is(err, domain.ErrNoOpenCampaign):
		EligibilityRejections.WithLabelValues("no_campaign_open").Inc()
	case errors.Is(err, domain.ErrStoreNotEnrolled):
		EligibilityRejections.WithLabelValues("not_enrolled").Inc()
	}
}

// RecordHTTP records the duration of one API request.
func RecordHTTP(route, code string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(route, code).Observe(seconds)
}
