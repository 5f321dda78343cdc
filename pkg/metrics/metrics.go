// Package metrics implements the in-process metric registry behind the
// scrape endpoint: counter, gauge and histogram instruments partitioned by
// label sets, with atomic per-instrument updates and point-in-time snapshots
// rendered in the text exposition format.
package metrics

import (
	"sort"
	"strings"
	"sync"
)

// Kind identifies the instrument type of a metric family.
type Kind string

const (
	KindCounter   Kind = "counter"
	KindGauge     Kind = "gauge"
	KindHistogram Kind = "histogram"
)

// Labels partitions a logical metric into independent series. Values must be
// low-cardinality (route templates, status classes), never raw request paths.
type Labels map[string]string

// DefBuckets are the default histogram upper bounds, in seconds.
var DefBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// instrument is a single (name, label set) series. Every mutation happens
// under mu, so a snapshot never observes a half-applied update.
type instrument struct {
	mu        sync.Mutex
	kind      Kind
	name      string
	labels    Labels
	signature string

	// counter and gauge state
	value float64

	// histogram state; bucketCounts are cumulative and parallel to bounds
	bounds       []float64
	bucketCounts []uint64
	count        uint64
	sum          float64
}

func (in *instrument) add(delta float64) {
	in.mu.Lock()
	in.value += delta
	in.mu.Unlock()
}

func (in *instrument) set(value float64) {
	in.mu.Lock()
	in.value = value
	in.mu.Unlock()
}

func (in *instrument) observe(value float64) {
	in.mu.Lock()
	for i, bound := range in.bounds {
		if value <= bound {
			in.bucketCounts[i]++
		}
	}
	in.count++
	in.sum += value
	in.mu.Unlock()
}

// snapshot copies the series state under the instrument lock.
func (in *instrument) snapshot() SeriesSnapshot {
	in.mu.Lock()
	defer in.mu.Unlock()

	s := SeriesSnapshot{
		Labels: copyLabels(in.labels),
		Value:  in.value,
		Count:  in.count,
		Sum:    in.sum,
	}
	if in.kind == KindHistogram {
		s.Bounds = append([]float64(nil), in.bounds...)
		s.BucketCounts = append([]uint64(nil), in.bucketCounts...)
	}
	return s
}

// SeriesSnapshot is an immutable copy of one instrument's state.
type SeriesSnapshot struct {
	Labels Labels

	// Value holds the counter or gauge reading.
	Value float64

	// Histogram state. BucketCounts are cumulative and parallel to Bounds;
	// Count and Sum cover all observations including those above the last
	// bound.
	Bounds       []float64
	BucketCounts []uint64
	Count        uint64
	Sum          float64

	signature string
}

// FamilySnapshot groups the series of one metric name.
type FamilySnapshot struct {
	Name   string
	Kind   Kind
	Series []SeriesSnapshot
}

// Snapshot is a point-in-time copy of the whole registry, ordered
// deterministically by metric name and label signature.
type Snapshot []FamilySnapshot

func copyLabels(labels Labels) Labels {
	if len(labels) == 0 {
		return nil
	}
	out := make(Labels, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}

// labelSignature renders labels as `k1="v1",k2="v2"` with keys sorted, which
// doubles as the stable series identity within a family.
func labelSignature(labels Labels) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeLabelValue(labels[k]))
		b.WriteByte('"')
	}
	return b.String()
}

func escapeLabelValue(v string) string {
	if !strings.ContainsAny(v, "\\\"\n") {
		return v
	}
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
