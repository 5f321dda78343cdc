package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSeries(t *testing.T, snap Snapshot, name string, labels Labels) *SeriesSnapshot {
	t.Helper()
	want := labelSignature(labels)
	for _, fam := range snap {
		if fam.Name != name {
			continue
		}
		for i := range fam.Series {
			if labelSignature(fam.Series[i].Labels) == want {
				return &fam.Series[i]
			}
		}
	}
	return nil
}

func TestCounterAddSumsDeltas(t *testing.T) {
	r := NewRegistry(nil)
	labels := Labels{"method": "GET", "route": "/items"}

	r.CounterAdd("http_requests_total", labels, 1)
	r.CounterAdd("http_requests_total", labels, 2)
	r.CounterInc("http_requests_total", labels)

	series := findSeries(t, r.Snapshot(), "http_requests_total", labels)
	require.NotNil(t, series)
	assert.Equal(t, 4.0, series.Value)
}

func TestCounterRejectsNegativeDelta(t *testing.T) {
	r := NewRegistry(nil)
	labels := Labels{"route": "/items"}

	r.CounterAdd("http_requests_total", labels, 3)
	r.CounterAdd("http_requests_total", labels, -1)

	series := findSeries(t, r.Snapshot(), "http_requests_total", labels)
	require.NotNil(t, series)
	assert.Equal(t, 3.0, series.Value, "negative delta must leave the counter unchanged")
}

func TestGaugeLastWriteWins(t *testing.T) {
	r := NewRegistry(nil)

	r.GaugeSet("memory_used_bytes", nil, 100)
	r.GaugeSet("memory_used_bytes", nil, 42)

	series := findSeries(t, r.Snapshot(), "memory_used_bytes", nil)
	require.NotNil(t, series)
	assert.Equal(t, 42.0, series.Value)
}

func TestGaugeAddGoesBothDirections(t *testing.T) {
	r := NewRegistry(nil)

	r.GaugeAdd("http_requests_in_progress", nil, 1)
	r.GaugeAdd("http_requests_in_progress", nil, 1)
	r.GaugeAdd("http_requests_in_progress", nil, -1)

	series := findSeries(t, r.Snapshot(), "http_requests_in_progress", nil)
	require.NotNil(t, series)
	assert.Equal(t, 1.0, series.Value)
}

func TestHistogramCountSumAndCumulativeBuckets(t *testing.T) {
	r := NewRegistry(nil)
	r.SetHistogramBuckets("latency_seconds", []float64{0.1, 0.5, 1})
	labels := Labels{"route": "/items"}

	for _, v := range []float64{0.05, 0.2, 0.7, 3} {
		r.HistogramObserve("latency_seconds", labels, v)
	}
	r.HistogramObserve("latency_seconds", labels, -1) // dropped

	series := findSeries(t, r.Snapshot(), "latency_seconds", labels)
	require.NotNil(t, series)
	assert.Equal(t, uint64(4), series.Count)
	assert.InDelta(t, 3.95, series.Sum, 1e-9)
	assert.Equal(t, []uint64{1, 2, 3}, series.BucketCounts)

	// Bucket counts are cumulative and never exceed the total count.
	for i := 1; i < len(series.BucketCounts); i++ {
		assert.GreaterOrEqual(t, series.BucketCounts[i], series.BucketCounts[i-1])
	}
	assert.GreaterOrEqual(t, series.Count, series.BucketCounts[len(series.BucketCounts)-1])
}

func TestHistogramUsesDefaultBuckets(t *testing.T) {
	r := NewRegistry(nil)

	r.HistogramObserve("http_request_duration_seconds", nil, 0.3)

	series := findSeries(t, r.Snapshot(), "http_request_duration_seconds", nil)
	require.NotNil(t, series)
	assert.Equal(t, DefBuckets, series.Bounds)
}

func TestKindConflictDropsUpdate(t *testing.T) {
	r := NewRegistry(nil)

	r.CounterAdd("requests", nil, 1)
	r.GaugeSet("requests", nil, 99)

	series := findSeries(t, r.Snapshot(), "requests", nil)
	require.NotNil(t, series)
	assert.Equal(t, 1.0, series.Value, "gauge write on a counter must be dropped")
}

func TestLabelSetsPartitionSeries(t *testing.T) {
	r := NewRegistry(nil)

	r.CounterInc("http_requests_total", Labels{"route": "/items", "status_class": "2xx"})
	r.CounterInc("http_requests_total", Labels{"route": "/items", "status_class": "4xx"})

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	assert.Len(t, snap[0].Series, 2)
}

func TestConcurrentIncrementsLoseNothing(t *testing.T) {
	for _, callers := range []int{10, 100} {
		r := NewRegistry(nil)
		labels := Labels{"route": "/items"}
		const perCaller = 1000

		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perCaller; j++ {
					r.CounterInc("http_requests_total", labels)
				}
			}()
		}
		wg.Wait()

		series := findSeries(t, r.Snapshot(), "http_requests_total", labels)
		require.NotNil(t, series)
		assert.Equal(t, float64(callers*perCaller), series.Value)
	}
}

func TestConcurrentFirstUseCreatesOneInstrument(t *testing.T) {
	r := NewRegistry(nil)
	labels := Labels{"route": "/fresh"}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			r.CounterAdd("first_use_total", labels, 1)
		}()
	}
	close(start)
	wg.Wait()

	snap := r.Snapshot()
	series := findSeries(t, snap, "first_use_total", labels)
	require.NotNil(t, series)
	assert.Equal(t, 100.0, series.Value, "a duplicate instrument would have swallowed increments")

	for _, fam := range snap {
		if fam.Name == "first_use_total" {
			assert.Len(t, fam.Series, 1)
		}
	}
}

func TestSnapshotIsImmutableCopy(t *testing.T) {
	r := NewRegistry(nil)
	labels := Labels{"route": "/items"}
	r.CounterAdd("http_requests_total", labels, 1)

	snap := r.Snapshot()
	r.CounterAdd("http_requests_total", labels, 5)

	series := findSeries(t, snap, "http_requests_total", labels)
	require.NotNil(t, series)
	assert.Equal(t, 1.0, series.Value, "snapshot must not see later updates")
}

func TestSnapshotWhileWriting(t *testing.T) {
	r := NewRegistry(nil)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			r.CounterInc("busy_total", Labels{"route": "/items"})
			r.HistogramObserve("busy_seconds", Labels{"route": "/items"}, 0.01)
		}
	}()

	for i := 0; i < 100; i++ {
		for _, fam := range r.Snapshot() {
			for _, series := range fam.Series {
				if fam.Kind == KindHistogram && len(series.BucketCounts) > 0 {
					last := series.BucketCounts[len(series.BucketCounts)-1]
					assert.GreaterOrEqual(t, series.Count, last,
						"per-instrument atomicity violated")
				}
			}
		}
	}
	<-done
}
