package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/collecte-service/internal/app/collecte/usecases/refresh_statuses"
	"github.com/light-bringer/collecte-service/internal/testutil"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
	seen  chan context.Context
}

func (r *countingRefresher) Execute(ctx context.Context, _ *refresh_statuses.Request) (*refresh_statuses.Response, error) {
	r.calls.Add(1)
	if r.seen != nil {
		r.seen <- ctx
	}
	if r.err != nil {
		return nil, r.err
	}
	return &refresh_statuses.Response{Scanned: 1}, nil
}

func TestNew_RejectsBadSpec(t *testing.T) {
	_, err := New(&countingRefresher{}, Options{Spec: "every tuesday"})
	assert.ErrorContains(t, err, "invalid refresh schedule")
}

func TestNext_DailyAtMidnight(t *testing.T) {
	s, err := New(&countingRefresher{}, Options{Spec: "0 0 * * *"})
	require.NoError(t, err)

	next := s.Next()
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestRunOnce_AppliesTimeout(t *testing.T) {
	r := &countingRefresher{seen: make(chan context.Context, 1)}
	s, err := New(r, Options{Spec: "@daily", Timeout: time.Minute})
	require.NoError(t, err)

	s.RunOnce(context.Background())

	ctx := <-r.seen
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRunOnce_SurvivesErrors(t *testing.T) {
	r := &countingRefresher{err: errors.New("listing failed")}
	s, err := New(r, Options{Spec: "@daily"})
	require.NoError(t, err)

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestSchedule_FiresAndStops(t *testing.T) {
	r := &countingRefresher{}
	s, err := New(r, Options{Spec: "@every 1s"})
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestRunOnce_WithRealRefresher(t *testing.T) {
	w := testutil.NewWorld(testutil.Day(2025, 1, 10))
	w.SeedCampaign(t, "c2025", 2025, testutil.Day(2025, 3, 1), testutil.Day(2025, 3, 31), nil)
	w.Clock.Set(testutil.Day(2025, 3, 2))

	s, err := New(refresh_statuses.NewInteractor(w.Campaigns, w.Clock), Options{Spec: "@daily"})
	require.NoError(t, err)
	s.RunOnce(context.Background())

	assert.Equal(t, "ACTIVE", string(w.Campaigns.Raw("c2025").StoredStatus()))
}
