package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExposeCounterExactLine(t *testing.T) {
	r := NewRegistry(nil)
	r.CounterAdd("http_requests_total", Labels{
		"method":       "GET",
		"route":        "/items",
		"status_class": "2xx",
	}, 3)

	out := Expose(r.Snapshot())

	assert.Contains(t, out, "# TYPE http_requests_total counter\n")
	assert.Contains(t, out,
		`http_requests_total{method="GET",route="/items",status_class="2xx"} 3`+"\n")
}

func TestExposeGauge(t *testing.T) {
	r := NewRegistry(nil)
	r.GaugeSet("memory_used_bytes", nil, 1048576)

	out := Expose(r.Snapshot())

	assert.Contains(t, out, "# TYPE memory_used_bytes gauge\n")
	assert.Contains(t, out, "memory_used_bytes 1.048576e+06\n")
}

func TestExposeHistogram(t *testing.T) {
	r := NewRegistry(nil)
	r.SetHistogramBuckets("http_request_duration_seconds", []float64{0.1, 0.5, 1})
	labels := Labels{"method": "POST", "route": "/items"}

	r.HistogramObserve("http_request_duration_seconds", labels, 0.05)
	r.HistogramObserve("http_request_duration_seconds", labels, 0.3)
	r.HistogramObserve("http_request_duration_seconds", labels, 2)

	out := Expose(r.Snapshot())

	assert.Contains(t, out, "# TYPE http_request_duration_seconds histogram\n")
	assert.Contains(t, out,
		`http_request_duration_seconds_bucket{le="0.1",method="POST",route="/items"} 1`+"\n")
	assert.Contains(t, out,
		`http_request_duration_seconds_bucket{le="0.5",method="POST",route="/items"} 2`+"\n")
	assert.Contains(t, out,
		`http_request_duration_seconds_bucket{le="1",method="POST",route="/items"} 2`+"\n")
	assert.Contains(t, out,
		`http_request_duration_seconds_bucket{le="+Inf",method="POST",route="/items"} 3`+"\n")
	assert.Contains(t, out,
		`http_request_duration_seconds_sum{method="POST",route="/items"} 2.35`+"\n")
	assert.Contains(t, out,
		`http_request_duration_seconds_count{method="POST",route="/items"} 3`+"\n")
}

func TestExposeDeterministicOrdering(t *testing.T) {
	build := func() string {
		r := NewRegistry(nil)
		r.CounterInc("zeta_total", Labels{"b": "2", "a": "1"})
		r.CounterInc("alpha_total", Labels{"route": "/y"})
		r.CounterInc("alpha_total", Labels{"route": "/x"})
		r.GaugeSet("mid_gauge", nil, 7)
		return Expose(r.Snapshot())
	}

	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}

	// Families sorted by name, series sorted by label signature.
	alphaX := strings.Index(first, `alpha_total{route="/x"}`)
	alphaY := strings.Index(first, `alpha_total{route="/y"}`)
	zeta := strings.Index(first, "zeta_total")
	require.NotEqual(t, -1, alphaX)
	require.NotEqual(t, -1, alphaY)
	require.NotEqual(t, -1, zeta)
	assert.Less(t, alphaX, alphaY)
	assert.Less(t, alphaY, zeta)

	// Label keys render sorted regardless of insertion order.
	assert.Contains(t, first, `zeta_total{a="1",b="2"} 1`)
}

func TestExposeEscapesLabelValues(t *testing.T) {
	r := NewRegistry(nil)
	r.CounterInc("odd_total", Labels{"note": "a\"b\\c\nd"})

	out := Expose(r.Snapshot())

	assert.Contains(t, out, `odd_total{note="a\"b\\c\nd"} 1`+"\n")
}

func TestExposeEmptySnapshot(t *testing.T) {
	assert.Equal(t, "", Expose(NewRegistry(nil).Snapshot()))
}
