package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preprintwatch/kgx3-endpoint-tests/report"
	"github.com/preprintwatch/kgx3-endpoint-tests/runner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSummary() report.Summary {
	return report.Summary{
		EndpointURL:       "https://example.com/submit",
		TotalRequests:     3,
		Passed:            2,
		Failed:            1,
		Skipped:           1,
		SuccessRate:       66.67,
		TotalDuration:     5 * time.Second,
		RequestsPerSecond: 0.6,
		MinResponseTime:   100 * time.Millisecond,
		MaxResponseTime:   400 * time.Millisecond,
		AvgResponseTime:   250 * time.Millisecond,
	}
}

func sampleOutcomes() []runner.Outcome {
	return []runner.Outcome{
		{Name: "a", Row: 1, Status: "200", Code: 200, Elapsed: 100 * time.Millisecond, Responded: true, Passed: true},
		{Name: "b", Row: 2, Status: "403", Code: 403, Elapsed: 400 * time.Millisecond, Responded: true},
		{Name: "c", Row: 3, Status: "Skipped", Skipped: true},
	}
}

func TestSaveRunAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2026, 8, 23, 10, 0, 0, 0, time.Local)
	runID, err := store.SaveRun(started, sampleSummary(), sampleOutcomes())
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	records, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, runID, r.ID)
	assert.Equal(t, started, r.StartedAt)
	assert.Equal(t, "https://example.com/submit", r.EndpointURL)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 2, r.Passed)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 5*time.Second, r.Duration)
	assert.InDelta(t, 0.6, r.RPS, 0.001)
}

func TestRecentRunsNewestFirstAndLimited(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		_, err := store.SaveRun(base.Add(time.Duration(i)*time.Hour), sampleSummary(), nil)
		require.NoError(t, err)
	}

	records, err := store.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].StartedAt.After(records[1].StartedAt))
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deeply", "nested", "runs.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
