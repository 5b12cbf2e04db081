package engine

import (
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/laptop-compare/internal/metrics"
)

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newTestEngine(t), 15*time.Minute, quietLogger())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
	assert.NotZero(t, sched.refreshEntryID)
}

func TestNewScheduler_InvalidInterval(t *testing.T) {
	t.Parallel()

	_, err := NewScheduler(newTestEngine(t), 0, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh interval must be positive")
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newTestEngine(t), time.Hour, nil)
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_SyncNextRunTimestamps(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newTestEngine(t), 15*time.Minute, quietLogger())
	require.NoError(t, err)

	sched.Start()
	defer sched.Stop()

	// The cron goroutine computes Next asynchronously after Start.
	require.Eventually(t, func() bool {
		sched.SyncNextRunTimestamps()
		return ptestutil.ToFloat64(metrics.SchedulerNextRefreshTimestamp) > 0
	}, time.Second, 10*time.Millisecond, "next refresh timestamp should be set")
}

func TestScheduler_RunRefreshPublishesSnapshot(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(t)
	sched, err := NewScheduler(eng, time.Hour, quietLogger())
	require.NoError(t, err)

	sched.runRefresh()

	snap, err := eng.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Catalog.Products, 4)
}
