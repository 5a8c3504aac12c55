package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/domain"
)

func value(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordEntryOutcome(t *testing.T) {
	before := value(t, EntriesRecorded)
	notEnrolled := value(t, EligibilityRejections.WithLabelValues("not_enrolled"))

	RecordEntryOutcome(nil)
	RecordEntryOutcome(domain.ErrStoreNotEnrolled)
	RecordEntryOutcome(errors.New("db down"))

	assert.Equal(t, before+1, value(t, EntriesRecorded))
	assert.Equal(t, notEnrolled+1, value(t, EligibilityRejections.WithLabelValues("not_enrolled")))
}

func TestRecordRefresh(t *testing.T) {
	updated := value(t, RefreshUpdated)
	errorsBefore := value(t, RefreshRuns.WithLabelValues("error"))

	RecordRefresh(3, 1, 0.2, nil)
	RecordRefresh(0, 0, 0.1, errors.New("listing failed"))

	assert.Equal(t, updated+3, value(t, RefreshUpdated))
	assert.Equal(t, errorsBefore+1, value(t, RefreshRuns.WithLabelValues("error")))
}
